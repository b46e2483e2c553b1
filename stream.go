package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matt-g-everett/animseq/api"
	"github.com/matt-g-everett/animseq/sequence"
	"github.com/matt-g-everett/animseq/sheet"
	"github.com/matt-g-everett/animseq/stream"
	"github.com/matt-g-everett/animseq/util"
)

type app struct {
	Config     stream.Config
	Client     mqtt.Client
	Controller *stream.Controller
	Streamer   *stream.Streamer
	Metrics    *prometheus.Registry
}

func newApp(config stream.Config) *app {
	a := new(app)
	a.Config = config
	a.Metrics = prometheus.NewRegistry()
	return a
}

func (a *app) handleOnConnect(client mqtt.Client) {
	log.Println("Connected")
}

func (a *app) connect() error {
	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID(a.Config.Mqtt.ClientID).
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(a.handleOnConnect)
	a.Client = mqtt.NewClient(options)

	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("connect to %s: %w", a.Config.Mqtt.URL, token.Error())
	}
	return nil
}

// build creates the controller for f. Every step renders to its own topic
// under the styles topic.
func (a *app) build(f *sequence.File, publisher stream.Publisher) error {
	var sinkFor func(util.ID) stream.Sink
	if publisher != nil {
		sinkFor = func(id util.ID) stream.Sink {
			return stream.NewMQTTSink(publisher, a.Config.Mqtt.Topics.Styles+"/"+id.String())
		}
	}
	registry := sheet.NewRegistry(sheet.WithMetrics(a.Metrics))
	c, err := stream.NewController(f, sinkFor, stream.WithRegistry(registry))
	if err != nil {
		return err
	}
	a.Controller = c
	if publisher != nil {
		a.Streamer = stream.NewStreamer(publisher, a.Config.Mqtt.Topics.Stream, c, a.Config.FrameRate)
	}
	return nil
}

func (a *app) serveApi(addr string) {
	if addr == "" {
		return
	}
	go func() {
		if err := api.NewApi(a.Controller, a.Metrics).Serve(addr); err != nil {
			log.Printf("api: %v", err)
		}
	}()
}

var streamCmd = &cobra.Command{
	Use:   "stream FILE",
	Short: "Play a sequence and stream its frames over MQTT",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")

		config, err := stream.ReadConfig(configPath)
		if err != nil {
			return err
		}
		log.Printf("Config: %+v", config.Mqtt.Topics)

		f, err := sequence.LoadFile(args[0])
		if err != nil {
			return err
		}

		a := newApp(config)
		if err := a.connect(); err != nil {
			return err
		}
		defer a.Client.Disconnect(250)

		if err := a.build(f, stream.NewMQTTPublisher(a.Client, 0)); err != nil {
			return err
		}
		a.Controller.Mount()
		defer a.Controller.Unmount()
		a.serveApi(config.Listen)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := a.Streamer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(streamCmd)
	streamCmd.Flags().StringP("config", "c", "config.yaml", "YAML config file.")
}
