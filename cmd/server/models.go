package main

import (
	"time"

	"gorm.io/gorm"
)

// Game represents a game in the database. The authoritative state is the
// ordered turn log; CurrentPlayer is denormalized for quick turn-order
// answers without a replay.
type Game struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug          string    `gorm:"type:text;uniqueIndex" json:"slug"`
	Size          int       `gorm:"not null" json:"size"`
	Player1       string    `gorm:"type:text" json:"player1"`
	Player2       string    `gorm:"type:text" json:"player2"`
	CurrentPlayer int       `gorm:"default:0" json:"current_player"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Associations
	Turns []TurnRecord `gorm:"foreignKey:GameID" json:"turns,omitempty"`
}

// TurnRecord is one applied turn. Payload is the JSON wire form the turn
// arrived in; replaying records in Ordinal order through the engine rebuilds
// the board.
type TurnRecord struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	GameID    int64     `gorm:"index;not null" json:"game_id"`
	Ordinal   int       `gorm:"not null" json:"ordinal"`
	Player    int       `gorm:"not null" json:"player"`
	Payload   string    `gorm:"type:text;not null" json:"payload"`
	CreatedAt time.Time `json:"created_at"`

	// Associations
	Game Game `gorm:"foreignKey:GameID" json:"-"`
}

// User represents a registered account.
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"type:varchar(128);not null" json:"username"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AutoMigrate runs the database migrations.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Game{}, &TurnRecord{}, &User{})
}
