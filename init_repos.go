package main

import (
	"database/sql"

	"github.com/akinalp/topluluk/repository"
)

// Repositories, tüm repository'leri bir arada taşıyan container.
// main.go'da bir kez oluşturulur, service katmanına dağıtılır.
type Repositories struct {
	Users      repository.UserRepository
	Sessions   repository.SessionRepository
	Categories repository.CategoryRepository
	Servers    repository.ServerRepository
	Channels   repository.ChannelRepository
}

// initRepositories, tüm SQLite repository'lerini oluşturur.
func initRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Users:      repository.NewSQLiteUserRepo(db),
		Sessions:   repository.NewSQLiteSessionRepo(db),
		Categories: repository.NewSQLiteCategoryRepo(db),
		Servers:    repository.NewSQLiteServerRepo(db),
		Channels:   repository.NewSQLiteChannelRepo(db),
	}
}
