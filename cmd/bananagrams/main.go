package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"bananagrams/internal/authn"
	"bananagrams/internal/config"
	"bananagrams/internal/dictionary"
	"bananagrams/internal/engine"
	"bananagrams/internal/httpapi"
	"bananagrams/internal/store"
	"bananagrams/internal/tiles"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: bananagrams [solve|serve|random]\n")
		os.Exit(1)
	}
	switch os.Args[1] {
	case "solve":
		runSolve()
	case "serve":
		runServe()
	case "random":
		runRandom()
	default:
		fmt.Fprintf(os.Stderr, "usage: bananagrams [solve|serve|random]\n")
		os.Exit(1)
	}
}

func loadDictionary(cfg config.Config) *dictionary.Dictionary {
	dict, err := dictionary.Load(cfg.DictionaryShortPath, cfg.DictionaryLongPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "unable to load dictionaries:", err)
		os.Exit(1)
	}
	return dict
}

// runServe launches the HTTP command surface. Reads the optional
// solve-oriented configuration at config.json (board size, dictionary
// paths, filter settings), falling back to defaults without it. DATABASE_URL, if set, enables Postgres-backed session
// persistence. OIDC_ISSUER_URL/OIDC_CLIENT_ID, if both set, enable bearer
// token verification.
func runServe() {
	logger := config.NewLogger()
	cfg := config.Load("config.json")
	logger.Info("starting server", "config", cfg.String())

	dict := loadDictionary(cfg)

	ctx := context.Background()

	var st *store.Store
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		s, err := store.Open(ctx, dbURL)
		if err != nil {
			logger.Error("failed to connect to database, continuing without session persistence", "error", err)
		} else {
			if err := s.Migrate(ctx); err != nil {
				logger.Error("failed to run session store migrations", "error", err)
				s.Close()
			} else {
				st = s
				defer s.Close()
			}
		}
	}

	var verifier *authn.Verifier
	issuer := os.Getenv("OIDC_ISSUER_URL")
	clientID := os.Getenv("OIDC_CLIENT_ID")
	if issuer != "" && clientID != "" {
		v, err := authn.NewVerifier(ctx, authn.Config{IssuerURL: issuer, ClientID: clientID})
		if err != nil {
			logger.Error("failed to configure OIDC verifier, continuing unauthenticated", "error", err)
		} else {
			verifier = v
		}
	}

	srv := httpapi.New(dict, cfg.BoardSize, cfg.Settings(), logger, verifier, st)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port
	logger.Info("listening", "addr", addr)
	if err := http.ListenAndServe(addr, srv.Routes()); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func runRandom() {
	cfg := config.Load("config.json")
	dict := loadDictionary(cfg)
	e := engine.New(dict, cfg.BoardSize, cfg.Settings())

	mode := engine.ModeStandard
	count := 21
	if len(os.Args) > 2 {
		mode = engine.RandomMode(os.Args[2])
	}
	if len(os.Args) > 3 {
		n, err := strconv.Atoi(os.Args[3])
		if err != nil {
			fmt.Fprintln(os.Stderr, "invalid count:", os.Args[3])
			os.Exit(1)
		}
		count = n
	}
	hand, err := e.GetRandomLetters(mode, count)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	fmt.Println(tiles.Decode(hand.Letters()))
}
