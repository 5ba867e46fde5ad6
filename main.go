package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"LessonBoard/internal/config"
	"LessonBoard/internal/input"
	"LessonBoard/internal/logging"
	lbnet "LessonBoard/internal/net"
	"LessonBoard/internal/persist"
	"LessonBoard/internal/render"
	"LessonBoard/internal/state"
	"LessonBoard/internal/ui"
)

const discoverTimeout = 3 * time.Second

func main() {
	configPath := flag.String("config", "lessonboard.toml", "path to the TOML configuration")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage:\n"+
			"  %[1]s [-config file] [lesson-id]        open a lesson\n"+
			"  %[1]s [-config file] lessonboard://...  open a shared lesson\n"+
			"  %[1]s [-config file] serve              run a storage server\n", os.Args[0])
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logging.Setup(os.Stderr, cfg.Log.Level)

	arg := flag.Arg(0)
	switch {
	case arg == "serve":
		err = runServer(cfg)
	case lbnet.IsLink(arg):
		err = runClient(cfg, arg)
	default:
		err = runLocal(cfg, arg)
	}
	if err != nil {
		log.Error("exiting", "err", err)
		os.Exit(1)
	}
}

// runLocal opens a lesson on the configured storage. Without a lesson id a
// new lesson is started.
func runLocal(cfg config.Config, lesson string) error {
	ctx := context.Background()
	gw, closeGateway, err := openGateway(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer closeGateway()
	if lesson == "" {
		lesson = state.NewLessonID()
	}
	return runBoard(cfg, gw, lesson)
}

// runClient follows a share link to a remote storage server.
func runClient(cfg config.Config, link string) error {
	addr, lesson, err := lbnet.ParseLink(link)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := lbnet.Dial(ctx, addr)
	if err != nil {
		return err
	}
	defer client.Close()
	if lesson == "" {
		lesson = state.NewLessonID()
	}
	return runBoard(cfg, client, lesson)
}

func openGateway(ctx context.Context, st config.Storage) (persist.Gateway, func(), error) {
	addr := st.Remote
	if addr == "" && st.Discover {
		found, err := lbnet.Discover(ctx, discoverTimeout)
		if err != nil && st.Dir == "" {
			return nil, nil, err
		}
		if err != nil {
			logging.Logger().Warn("storage discovery failed, using local files", "err", err)
		}
		addr = found
	}
	if addr != "" {
		client, err := lbnet.Dial(ctx, addr)
		if err != nil {
			return nil, nil, err
		}
		return client, func() { client.Close() }, nil
	}
	return persist.NewFileGateway(st.Dir), func() {}, nil
}

func runBoard(cfg config.Config, gw persist.Gateway, lesson string) error {
	bg, err := state.ParseColor(cfg.Board.Background)
	if err != nil {
		return err
	}
	tool, err := state.ParseTool(cfg.Board.Tool)
	if err != nil {
		return err
	}
	surface := render.NewSurface(cfg.Board.Width, cfg.Board.Height, bg)
	saves := persist.NewDispatcher(gw, cfg.Storage.SaveTimeout)
	ctrl := input.NewController(surface, gw, saves, input.Options{
		Tool:         tool,
		Color:        cfg.Board.BrushColor,
		BrushSize:    cfg.Board.BrushSize,
		EraserRadius: cfg.Board.EraserRadius,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	ctrl.Open(ctx, lesson)
	cancel()

	board := ui.NewBoardWidget(ctrl)
	ui.RunApp("Lesson Board - "+lesson, float32(cfg.Board.Width), float32(cfg.Board.Height), board)

	ctrl.Close()
	saves.Wait()
	return nil
}

// runServer stores lessons in cfg.Storage.Dir and serves them to boards.
func runServer(cfg config.Config) error {
	log := logging.Logger()
	srv := lbnet.NewServer(persist.NewFileGateway(cfg.Storage.Dir))
	mux := http.NewServeMux()
	mux.Handle(lbnet.Path, srv)
	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("storage server listening", "port", cfg.Server.Port, "dir", cfg.Storage.Dir)
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("storage server: %w", err)
		}
		return nil
	})
	if cfg.Server.Advertise {
		g.Go(func() error {
			responder, err := lbnet.Advertise(cfg.Server.Port)
			if err != nil {
				log.Warn("mDNS advertisement disabled", "err", err)
				return nil
			}
			<-ctx.Done()
			return responder.Shutdown()
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		srv.Close()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdown)
	})

	addr := fmt.Sprintf("%s:%d", lbnet.OutgoingIP(), cfg.Server.Port)
	fmt.Fprintln(os.Stdout, "Share link:", lbnet.ShareLink(addr, state.NewLessonID()))
	return g.Wait()
}
