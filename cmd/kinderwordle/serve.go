package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/kinderwordle/internal/platform/tui"
	"github.com/vovakirdan/kinderwordle/internal/words"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagRate        int
	flagBurst       int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Kinderwordle SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a word pack menu. Games in
progress and statistics are kept per SSH user name.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.kinderwordle/host_key

Examples:
  kinderwordle serve                           # Listen on :23234 with auto-generated key
  kinderwordle serve --ssh :2222               # Listen on port 2222
  kinderwordle serve --host-key ./my_host_key  # Use specific host key
  kinderwordle serve --rate 2 --burst 10       # Allow more sessions per host

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	def := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", def.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", int(def.IdleTimeout/time.Minute), "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().IntVar(&flagRate, "rate", def.RatePerSecond, "New sessions per second per remote host (0 = unlimited)")
	serveCmd.Flags().IntVar(&flagBurst, "burst", def.Burst, "Burst of new sessions per remote host")
}

func runServe(_ *cobra.Command, _ []string) {
	if err := serve(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serve() error {
	gameCfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	registerUserPacks(gameCfg, logger)
	if !words.Exists(gameCfg.Rules.Pack) {
		return fmt.Errorf("unknown word pack %q (run 'kinderwordle packs' to list packs)", gameCfg.Rules.Pack)
	}

	cfg := tui.SSHServerConfig{
		Address:       flagSSHAddr,
		HostKeyPath:   flagHostKey,
		DBPath:        dbPath(),
		IdleTimeout:   time.Duration(flagIdleTimeout) * time.Minute,
		RatePerSecond: flagRate,
		Burst:         flagBurst,
		Game:          gameCfg,
	}

	server, err := tui.NewSSHServer(cfg, logger.WithPrefix("kinderwordle-ssh"))
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting Kinderwordle SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
