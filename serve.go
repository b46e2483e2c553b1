package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/matt-g-everett/animseq/api"
	"github.com/matt-g-everett/animseq/sequence"
	"github.com/matt-g-everett/animseq/stream"
)

var serveCmd = &cobra.Command{
	Use:   "serve FILE",
	Short: "Control a sequence over HTTP",
	Long:  `Mounts the sequence and exposes its stylesheet, timings, play and reverse over HTTP, without MQTT.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		f, err := sequence.LoadFile(args[0])
		if err != nil {
			return err
		}

		a := newApp(stream.Config{})
		if err := a.build(f, nil); err != nil {
			return err
		}
		a.Controller.Mount()
		defer a.Controller.Unmount()

		srv := &http.Server{
			Addr:    addr,
			Handler: api.NewApi(a.Controller, a.Metrics).Handler(),
		}

		serverErrors := make(chan error, 1)
		go func() {
			log.Printf("api: listening on %s", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return err
		case sig := <-shutdown:
			log.Printf("Shutting down on %v", sig)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return srv.Close()
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on")
}
