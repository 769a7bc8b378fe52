package main

import (
	"fmt"

	"github.com/ifo/sanic"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"moul.io/zapgorm2"

	"github.com/takgame/takgo"
)

func getDB() (*gorm.DB, error) {
	gormLogger := zapgorm2.New(log.Desugar())
	gormLogger.LogLevel = logger.Warn
	gormLogger.SetAsDefault()
	config := &gorm.Config{Logger: gormLogger}

	var db *gorm.DB
	var err error
	if opts.DatabaseURL != "" {
		db, err = gorm.Open(postgres.Open(opts.DatabaseURL), config)
	} else {
		db, err = gorm.Open(sqlite.Open(opts.SQLitePath), config)
	}
	if err != nil {
		return nil, err
	}

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to run auto-migration: %v", err)
	}

	return db, nil
}

// createGame stores a new game row and returns its slug. Size has already
// been range-checked by the handler.
func createGame(db *gorm.DB, size int, player1, player2 string) (string, error) {
	worker := sanic.NewWorker7()
	id := worker.NextID()
	slug := worker.IDString(id)

	game := Game{
		Slug:          slug,
		Size:          size,
		Player1:       player1,
		Player2:       player2,
		CurrentPlayer: 1,
	}

	if err := db.Create(&game).Error; err != nil {
		return "", err
	}

	return slug, nil
}

func getGame(db *gorm.DB, slug string) (*Game, error) {
	var game Game
	if err := db.Preload("Turns", func(db *gorm.DB) *gorm.DB {
		return db.Order("ordinal")
	}).Where("slug = ?", slug).First(&game).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

// replayTurns rebuilds the live game state from the first upto turn records
// (all of them when upto is negative). A record the engine rejects means the
// stored log is corrupt.
func replayTurns(game *Game, upto int) (*takgo.GameState, error) {
	state := takgo.NewGameState(game.Size)
	for i, rec := range game.Turns {
		if upto >= 0 && i >= upto {
			break
		}
		tp, err := decodePayload(rec.Payload)
		if err != nil {
			return nil, fmt.Errorf("turn %d of game %s is unreadable: %v", rec.Ordinal, game.Slug, err)
		}
		turn, err := tp.Turn()
		if err != nil {
			return nil, fmt.Errorf("turn %d of game %s is unreadable: %v", rec.Ordinal, game.Slug, err)
		}
		if !state.ApplyTurn(turn) {
			return nil, fmt.Errorf("turn %d of game %s does not replay", rec.Ordinal, game.Slug)
		}
	}
	return state, nil
}

// insertTurn appends an applied turn to the game's log and advances the
// denormalized current player.
func insertTurn(db *gorm.DB, game *Game, tp *TurnPayload, next takgo.Player) error {
	payload, err := encodePayload(tp)
	if err != nil {
		return err
	}

	rec := TurnRecord{
		GameID:  game.ID,
		Ordinal: len(game.Turns) + 1,
		Player:  tp.Player,
		Payload: payload,
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		return tx.Model(&Game{}).Where("id = ?", game.ID).
			Update("current_player", playerWire(next)).Error
	})
}
