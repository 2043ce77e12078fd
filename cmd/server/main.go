package main

import (
	"database/sql"
	"net/http"

	"github.com/rs/zerolog/log"

	_ "github.com/lib/pq"

	"github.com/payday-kr/settlement-core/cmd/httpserver"
	"github.com/payday-kr/settlement-core/internal/middleware"
	"github.com/payday-kr/settlement-core/pkg/configpkg"
	"github.com/payday-kr/settlement-core/pkg/dbpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.GetLogger(config)

	var conn *sql.DB
	if config.DBDriver != httpserver.DriverMemory {
		conn, err = dbpkg.Setup(config.DBDriver, config.DBSource)
		if err != nil {
			logger.Fatal().Err(err).Msg("cannot connect to db")
		}
	}

	server, err := httpserver.New(conn, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	if err := http.ListenAndServe(config.ServerAddress, server); err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
