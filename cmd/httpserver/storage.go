package main

import (
	"context"
	"filmorate/dynamodb"
	"filmorate/film"
	"filmorate/genre"
	"filmorate/memory"
	"filmorate/mpa"
	"filmorate/pkg/config"
	"filmorate/postgres"
	"filmorate/user"
	"fmt"
	"strconv"
)

type services struct {
	films   film.Service
	users   user.Service
	genres  genre.Service
	ratings mpa.Service
	ping    func(ctx context.Context) error
}

// initServices wires the usecases to the backend named by cfg.Storage. The
// returned func releases the backend's connections.
func initServices(ctx context.Context, cfg *config.Config) (services, func(), error) {
	switch cfg.Storage {
	case config.StorageMemory:
		store := memory.NewStore()
		return newServices(store.Films(), store.Users(), memory.NewGenreRepository(), memory.NewRatingRepository()), func() {}, nil

	case config.StorageDynamoDB:
		client, err := dynamodb.NewClient(ctx, dynamodb.Options{
			Region:       cfg.DynamoDB.Region,
			Endpoint:     cfg.DynamoDB.Endpoint,
			AccessKey:    cfg.DynamoDB.AccessKey,
			SecretKey:    cfg.DynamoDB.SecretKey,
			SessionToken: cfg.DynamoDB.SessionToken,
		})
		if err != nil {
			return services{}, nil, err
		}
		if cfg.DynamoDB.CreateTables {
			err = dynamodb.EnsureTables(ctx, client,
				dynamodb.EntityTable(cfg.DynamoDB.UsersTable),
				dynamodb.EntityTable(cfg.DynamoDB.FilmsTable),
				dynamodb.CounterTable(cfg.DynamoDB.CountersTable),
			)
			if err != nil {
				return services{}, nil, err
			}
		}
		ids := dynamodb.NewCounter(client, cfg.DynamoDB.CountersTable)
		genres, ratings := memory.NewGenreRepository(), memory.NewRatingRepository()
		users := dynamodb.NewUserRepository(client, cfg.DynamoDB.UsersTable, cfg.DynamoDB.FilmsTable, ids)
		films := dynamodb.NewFilmRepository(client, cfg.DynamoDB.FilmsTable, ids, genres, ratings)
		return newServices(films, users, genres, ratings), func() {}, nil

	case config.StoragePostgres:
		db, err := postgres.NewConnection(postgres.Options{
			DBName:   cfg.DB.Name,
			DBUser:   cfg.DB.User,
			Password: cfg.DB.Pass,
			Host:     cfg.DB.Host,
			Port:     strconv.Itoa(cfg.DB.Port),
			SSLMode:  cfg.DB.EnableSSL,
		})
		if err != nil {
			return services{}, nil, fmt.Errorf("open postgres connection: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return services{}, nil, err
		}
		users := postgres.NewUserRepository(db)
		s := newServices(postgres.NewFilmRepository(db), users, postgres.NewGenreRepository(db), postgres.NewRatingRepository(db))
		s.ping = sqlDB.PingContext
		return s, func() { _ = sqlDB.Close() }, nil
	}

	return services{}, nil, fmt.Errorf("unknown storage %q", cfg.Storage)
}

func newServices(films film.Repository, users user.Repository, genres genre.Repository, ratings mpa.Repository) services {
	return services{
		films:   film.NewUsecase(films, users, genres, ratings),
		users:   user.NewUsecase(users),
		genres:  genre.NewUsecase(genres),
		ratings: mpa.NewUsecase(ratings),
	}
}
