// Demo binary wiring a file transport and an optional WebSocket hub to one
// logger, then exercising levels, colors and logical threads.
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/oogooro/log4uwu"
	"github.com/oogooro/log4uwu/hub"
)

var (
	logFile string
	listen  string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:          "log4uwu-demo",
	Short:        "Exercises the log4uwu logger against a file and an optional live hub",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&logFile, "file", "logs/demo.log", "log file path (empty disables the file transport)")
	rootCmd.Flags().StringVar(&listen, "listen", "", "address for the WebSocket hub, e.g. :8080 (empty disables it)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "show debug and thread lifecycle messages interactively")
}

func run(cmd *cobra.Command, args []string) error {
	opts := []log4uwu.Option{log4uwu.WithDebug(debug)}
	if logFile != "" {
		opts = append(opts, log4uwu.WithFile(logFile))
	}
	if listen != "" {
		h := hub.New()
		defer h.Close()
		opts = append(opts, log4uwu.WithStream(h))
		go func() {
			if err := http.ListenAndServe(listen, h); err != nil {
				fmt.Fprintln(os.Stderr, "hub:", err)
			}
		}()
	}
	logger, err := log4uwu.New(opts...)
	if err != nil {
		return errors.Wrap(err, "construct logger")
	}

	logger.Init("demo starting")
	logger.Info("plain informational message")
	logger.Log(log4uwu.LVL_INFO, "colored message body", log4uwu.WithColor("cyan"))
	logger.Log(log4uwu.LVL_WARN, "recorded but not shown", log4uwu.Silent())
	logger.Warn("something looks off")
	logger.Debug("visible interactively only with --debug")
	logger.Error(errors.New("synthetic failure"))

	worker := logger.StartThread()
	worker.Info("thread is working")
	fmt.Fprintf(worker.Lvl(log4uwu.LVL_WARN), "buffer at %d%%", 93)
	worker.Debug("thread internals")

	other := logger.StartThread()
	other.Log(log4uwu.LVL_INFO, "parallel work", log4uwu.WithColor("magenta"))
	logger.Info("active threads: " + fmt.Sprint(logger.ActiveThreads()))

	if listen != "" {
		logger.Info("streaming to " + listen + " for 30s, connect with any WebSocket client")
		time.Sleep(30 * time.Second)
	}

	for _, id := range logger.EndAllThreads() {
		logger.Debug("ended " + id)
	}
	logger.Init("demo done")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
