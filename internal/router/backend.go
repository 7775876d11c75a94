package router

import (
	"fmt"

	mem "pet-adoption/internal/adapters/storage/memory"
	pg "pet-adoption/internal/adapters/storage/postgres"
	rstore "pet-adoption/internal/adapters/storage/redis"
	"pet-adoption/internal/domain/applications"
	"pet-adoption/internal/domain/favorites"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/shelters"
	"pet-adoption/internal/domain/users"
	"pet-adoption/internal/ports/auth"

	goredis "github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
)

// Backend agrupa los repos de todos los módulos. Se construye una vez al
// arrancar y se comparte entre server y worker.
type Backend struct {
	Shelters     shelters.Repository
	Pets         pets.Repository
	Favorites    favorites.Repository
	Applications applications.Repository
	Users        users.Repository
	Sessions     auth.SessionStore
}

// NewMemoryBackend: modo dev y tests.
func NewMemoryBackend() Backend {
	shelterRepo := mem.NewShelterRepo()
	petRepo := mem.NewPetRepo(shelterRepo)
	return Backend{
		Shelters:     shelterRepo,
		Pets:         petRepo,
		Favorites:    mem.NewFavoriteRepo(petRepo),
		Applications: mem.NewApplicationRepo(petRepo),
		Users:        mem.NewUserRepo(),
		Sessions:     mem.NewSessionStore(),
	}
}

// NewBackend elige Postgres si hay db, si no in-memory. El store de sesiones
// sale de sessionStore (memory|postgres|redis).
func NewBackend(db *sqlx.DB, rdb *goredis.Client, sessionStore string) (Backend, error) {
	b := NewMemoryBackend()

	if db != nil {
		gdb, err := pg.NewGorm(db)
		if err != nil {
			return Backend{}, fmt.Errorf("gorm: %w", err)
		}
		b.Shelters = pg.NewSheltersRepo(gdb)
		b.Pets = pg.NewPetsRepo(db)
		b.Favorites = pg.NewFavoritesRepo(db)
		b.Applications = pg.NewApplicationsRepo(db)
		b.Users = pg.NewUsersRepo(gdb)
	}

	switch sessionStore {
	case "", "memory":
	case "postgres":
		if db == nil {
			return Backend{}, fmt.Errorf("postgres session store requires a database")
		}
		b.Sessions = pg.NewSessionStore(db)
	case "redis":
		if rdb == nil {
			return Backend{}, fmt.Errorf("redis session store requires a redis client")
		}
		b.Sessions = rstore.NewSessionStore(rdb)
	default:
		return Backend{}, fmt.Errorf("unknown session store %q", sessionStore)
	}
	return b, nil
}

// Services son los casos de uso armados sobre un Backend.
type Services struct {
	Shelters     *shelters.Service
	Pets         *pets.Service
	Favorites    *favorites.Service
	Applications *applications.Service
	Users        *users.Service
}

func NewServices(b Backend) Services {
	shelterSvc := shelters.NewService(b.Shelters)
	petSvc := pets.NewService(b.Pets, shelterSvc)
	return Services{
		Shelters:     shelterSvc,
		Pets:         petSvc,
		Favorites:    favorites.NewService(b.Favorites, petSvc),
		Applications: applications.NewService(b.Applications, petSvc),
		Users:        users.NewService(b.Users),
	}
}
