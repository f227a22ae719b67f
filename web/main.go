package main

import (
	"os"
	"os/signal"

	"github.com/urfave/cli"

	"github.com/df07/go-ray-optics/pkg/log"
	"github.com/df07/go-ray-optics/pkg/scene"
	"github.com/df07/go-ray-optics/web/server"
)

var logger = log.New("web")

func main() {
	app := cli.NewApp()
	app.Name = "ray-optics-web"
	app.Usage = "serve the ray optics tracer over HTTP"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "port, p",
			Value: 8080,
			Usage: "port to serve on",
		},
		cli.StringFlag{
			Name:  "scenes-dir",
			Usage: "directory containing scene files (default: ./scenes or ../scenes)",
		},
		cli.StringFlag{
			Name:  "log-level",
			Value: "notice",
			Usage: "debug, info, notice, warning or error",
		},
	}
	app.Action = serve

	if err := app.Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func serve(ctx *cli.Context) error {
	level, err := log.ParseLevel(ctx.String("log-level"))
	if err != nil {
		return err
	}
	log.SetLevel(level)

	dir := ctx.String("scenes-dir")
	if dir == "" {
		dir = scene.ScenesDir()
	}

	webServer := server.NewServer(ctx.Int("port"), dir)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		logger.Notice("interrupted, cancelling running jobs")
		webServer.Close()
		os.Exit(0)
	}()

	logger.Noticef("Ray optics web server, visit http://localhost:%d", ctx.Int("port"))
	return webServer.Start()
}
