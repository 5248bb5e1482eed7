// Command war-cli plays War against the computer in the terminal.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ericogr/war-cards/internal/api"
	"github.com/ericogr/war-cards/internal/deck"
	"github.com/ericogr/war-cards/internal/logging"
	"github.com/ericogr/war-cards/internal/service"
	"github.com/ericogr/war-cards/internal/storage"
	"github.com/ericogr/war-cards/internal/version"
	"github.com/google/uuid"
	"github.com/pterm/pterm"
)

func main() {
	name := flag.String("name", "Player", "display name")
	seed := flag.Uint64("seed", 0, "replay a match with a fixed shuffle seed (0 = random)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Get().String())
		return
	}
	logging.SetLevel("error")
	defer logging.Sync()

	db, err := storage.OpenAndMigrate("file:war-cli?mode=memory&cache=shared")
	if err != nil {
		pterm.Error.Println("failed to open local store:", err)
		os.Exit(1)
	}
	repo := storage.NewSQLiteRepository(db)

	var provider deck.Provider = deck.NewMemoryProvider()
	if *seed != 0 {
		provider = deck.NewSeededMemoryProvider(*seed)
	}

	s := &cliSession{
		ctx:        context.Background(),
		repo:       repo,
		provider:   provider,
		playerUUID: uuid.NewString(),
	}
	_ = repo.UpsertUser(s.playerUUID, *name)
	if err := s.start(*name); err != nil {
		pterm.Error.Println(errorHeader(err))
		os.Exit(1)
	}

	in := bufio.NewScanner(os.Stdin)
	for {
		pterm.Print(pterm.Gray("[d]raw  [r]everse  [n]ew deck  [q]uit > "))
		if !in.Scan() {
			break
		}
		if !s.handle(strings.ToLower(strings.TrimSpace(in.Text()))) {
			break
		}
	}
	s.printStats()
}

type cliSession struct {
	ctx        context.Context
	repo       storage.Repository
	provider   deck.Provider
	playerUUID string
	code       string
}

func (s *cliSession) start(name string) error {
	m, err := service.StartMatch(s.ctx, s.repo, s.provider, s.playerUUID, name)
	if err != nil {
		return err
	}
	s.code = m.Code
	render(api.NewMatchView(m, nil))
	return nil
}

// handle runs one command and reports whether the loop should continue.
func (s *cliSession) handle(cmd string) bool {
	switch cmd {
	case "d", "draw", "":
		m, r, err := service.DrawRound(s.ctx, s.repo, s.provider, s.code, s.playerUUID)
		if err != nil {
			pterm.Warning.Println(errorHeader(err))
			return true
		}
		render(api.NewMatchView(m, &r.Hints))
	case "r", "reverse":
		m, err := service.ToggleReverse(s.ctx, s.repo, s.code, s.playerUUID)
		if err != nil {
			pterm.Warning.Println(errorHeader(err))
			return true
		}
		render(api.NewMatchView(m, nil))
	case "n", "new":
		m, err := service.NewDeck(s.ctx, s.repo, s.provider, s.code, s.playerUUID)
		if err != nil {
			pterm.Warning.Println(errorHeader(err))
			return true
		}
		render(api.NewMatchView(m, nil))
	case "q", "quit", "exit":
		return false
	default:
		pterm.Info.Printfln("unknown command %q", cmd)
	}
	return true
}

func (s *cliSession) printStats() {
	u, err := s.repo.GetStatsByPlayer(s.playerUUID)
	if err != nil {
		return
	}
	pterm.Info.Printfln("games %d  wins %d  losses %d  ties %d", u.GamesPlayed, u.Wins, u.Losses, u.Ties)
}
