package main

import (
	flags "github.com/jessevdk/go-flags"
)

// Options is the server configuration, fillable from flags or environment.
type Options struct {
	Port        string `long:"port" env:"PORT" default:"8080" description:"port to listen on"`
	DatabaseURL string `long:"database-url" env:"DATABASE_URL" description:"postgres connection string; sqlite is used when empty"`
	SQLitePath  string `long:"sqlite-path" env:"SQLITE_PATH" default:"takgo.db" description:"sqlite database file used without DATABASE_URL"`
	JWTSecret   string `long:"jwt-secret" env:"JWT_SECRET" default:"dev-secret-change-me" description:"HMAC secret for session tokens"`
	Production  bool   `long:"production" env:"PRODUCTION" description:"enable production hardening (ssl redirect, hsts)"`
}

var opts Options

func parseConfig(args []string) error {
	_, err := flags.NewParser(&opts, flags.Default).ParseArgs(args)
	return err
}
