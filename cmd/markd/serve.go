package main

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jspencer/markd/internal/api"
	"github.com/jspencer/markd/internal/config"
	"github.com/jspencer/markd/internal/db"
	"github.com/jspencer/markd/internal/logger"
	"github.com/jspencer/markd/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
			defer func() { _ = log.Sync() }()

			database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := db.Migrate(database, cfg.DB.Driver); err != nil {
				return err
			}

			collectionStore := store.NewCollectionStore(database)
			tagStore := store.NewTagStore(database)
			bookmarkStore := store.NewBookmarkStore(database, tagStore, collectionStore)

			router := api.NewRouter(api.Deps{
				Log:         log,
				Bookmarks:   bookmarkStore,
				Collections: collectionStore,
				Tags:        tagStore,
			})

			log.Info("listening", logger.String("addr", cfg.HTTP.Addr))
			return http.ListenAndServe(cfg.HTTP.Addr, router)
		},
	}
}
