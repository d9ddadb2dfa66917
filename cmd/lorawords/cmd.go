package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danmuck/lorawords/internal/config"
	"github.com/danmuck/lorawords/internal/link"
	"github.com/danmuck/lorawords/internal/observability"
	"github.com/danmuck/lorawords/internal/packet"
	"github.com/danmuck/lorawords/internal/transport"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	envFile    string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:           "lorawords",
		Short:         "Encode, decode and exchange short text packets over a LoRa UART modem.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(flags.envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("load env file: %w", err)
			}
			observability.InitLogger("lorawords")
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "lorawords.toml", "node config file")
	root.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "optional env file with LORAWORDS_* overrides")

	root.AddCommand(
		newEncodeCmd(),
		newDecodeCmd(),
		newSendCmd(flags),
		newListenCmd(flags),
		newInitCmd(flags),
		newPortsCmd(),
		newVersionCmd(),
	)
	return root
}

func newEncodeCmd() *cobra.Command {
	var p packet.Packet
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Print the wire form of a packet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wire, err := packet.Encode(p)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(wire))
			return nil
		},
	}
	cmd.Flags().StringVar(&p.From, "from", "", "source host")
	cmd.Flags().StringVar(&p.To, "to", packet.Broadcast, "destination host")
	cmd.Flags().StringVar(&p.Payload, "payload", "", "payload text")
	cmd.Flags().StringVar(&p.Sequence, "seq", "", "sequence token")
	return cmd
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <wire>",
		Short: "Parse a wire string and print its fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := packet.DecodeString(args[0])
			if err != nil {
				return err
			}
			printPacket(cmd.OutOrStdout(), p)
			return nil
		},
	}
}

func newSendCmd(flags *rootFlags) *cobra.Command {
	var to, payload string
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send one packet from the configured host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, _, err := openLink(flags.configPath)
			if err != nil {
				return err
			}
			defer l.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			p, err := l.Send(ctx, to, payload)
			if err != nil {
				return err
			}
			log.Info().Str("to", p.To).Str("seq", p.Sequence).Msg("packet sent")
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", packet.Broadcast, "destination host")
	cmd.Flags().StringVar(&payload, "payload", "", "payload text")
	return cmd
}

func newListenCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "listen",
		Short: "Print packets addressed to the configured host until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, cfg, err := openLink(flags.configPath)
			if err != nil {
				return err
			}
			defer l.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if cfg.MetricsAddr != "" {
				srv := serveMetrics(cfg.MetricsAddr)
				defer srv.Close()
			}

			log.Info().Str("host", l.Host()).Str("transport", cfg.Transport).Msg("listening")
			for {
				p, err := l.Recv(ctx)
				if err != nil {
					if ctx.Err() != nil || errors.Is(err, transport.ErrClosed) {
						log.Info().Msg("listener stopped")
						return nil
					}
					return err
				}
				printPacket(cmd.OutOrStdout(), p)
			}
		},
	}
}

func newInitCmd(flags *rootFlags) *cobra.Command {
	var kind string
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteTemplate(flags.configPath, kind, force); err != nil {
				return err
			}
			log.Info().Str("path", flags.configPath).Str("kind", kind).Msg("config written")
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", config.TransportSerial, "template kind (serial|memory)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newPortsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ports",
		Short: "List serial ports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ports, err := transport.Ports()
			if err != nil {
				return err
			}
			for _, p := range ports {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

func openLink(path string) (*link.Link, config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, config.Config{}, err
	}
	log.Info().Str("path", path).Msg("loaded config")

	t, err := openTransport(cfg, log.Logger)
	if err != nil {
		return nil, config.Config{}, err
	}

	opts := []link.Option{link.WithPromiscuous(cfg.Promiscuous)}
	if cfg.Sequence == config.SequenceXID {
		opts = append(opts, link.WithSequencer(link.XIDSequencer{}))
	}
	l, err := link.New(cfg.Host, t, opts...)
	if err != nil {
		t.Close()
		return nil, config.Config{}, err
	}
	return l, cfg, nil
}

// openTransport builds the configured transport. The memory kind is a
// process-local loopback bus for dry runs.
func openTransport(cfg config.Config, logger zerolog.Logger) (transport.Transport, error) {
	switch cfg.Transport {
	case config.TransportMemory:
		return transport.NewBus().Attach(0), nil
	case config.TransportSerial:
		s, err := transport.OpenSerial(cfg.Serial.Port, cfg.Serial.Options, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown transport %q", cfg.Transport)
	}
}

func serveMetrics(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", observability.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Str("addr", addr).Msg("metrics server stopped")
		}
	}()
	log.Info().Str("addr", addr).Msg("serving metrics")
	return srv
}

func printPacket(w io.Writer, p packet.Packet) {
	fmt.Fprintf(w, "from=%s to=%s seq=%q broadcast=%t payload=%q\n",
		p.From, p.To, p.Sequence, p.IsBroadcast(), p.Payload)
}
