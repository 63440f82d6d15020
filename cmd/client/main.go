package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/palemoky/yewchat/internal/apperrors"
	"github.com/palemoky/yewchat/internal/config"
	"github.com/palemoky/yewchat/internal/logger"
	"github.com/palemoky/yewchat/internal/ui"
)

type clientFlags struct {
	configPath string
	serverURL  string
	username   string
	mute       bool
	debug      bool
}

func newRootCmd() *cobra.Command {
	var flags clientFlags

	cmd := &cobra.Command{
		Use:   "yewchat",
		Short: "Terminal chat client",
		Long: `Join a YewChat relay from the terminal.

Enter sends, Ctrl+E opens the emoji picker, Ctrl+C quits.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, flags)
			if err != nil {
				return err
			}
			return run(cfg, flags.debug)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "configs/config.yaml", "配置文件路径")
	cmd.Flags().StringVarP(&flags.serverURL, "server", "s", "", "服务器地址 (ws://host:port/ws)")
	cmd.Flags().StringVarP(&flags.username, "name", "n", "", "用户名")
	cmd.Flags().BoolVar(&flags.mute, "mute", false, "关闭提示音")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "记录调试日志")
	return cmd
}

// resolveConfig 加载配置文件，命令行参数优先
func resolveConfig(cmd *cobra.Command, flags clientFlags) (*config.ClientConfig, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = config.Default()
	}

	client := cfg.Client
	if cmd.Flags().Changed("server") {
		client.ServerURL = flags.serverURL
	}
	if cmd.Flags().Changed("name") {
		client.Username = flags.username
	}
	if cmd.Flags().Changed("mute") {
		client.Mute = flags.mute
	}
	return &client, nil
}

func run(cfg *config.ClientConfig, debug bool) error {
	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	defer logger.Close()
	logger.SetDebug(debug)

	err := ui.Run(*cfg)
	if errors.Is(err, apperrors.ErrMissingIdentity) {
		return fmt.Errorf("%w: pass --name or set client.username", err)
	}
	return err
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
