package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"dnsdhcpapi/internal/command"
	"dnsdhcpapi/internal/config"
	"dnsdhcpapi/internal/monitor"
	"dnsdhcpapi/internal/web"
	"dnsdhcpapi/pkg/utils"
)

const (
	configFile = "dnsdhcpapi.ini"
)

var (
	sha1ver   string
	buildTime string
	repoName  string
)

var log = logrus.WithField("prefix", "main")

func main() {
	configPath := flag.StringP("config", "c", configFile, "path to the INI configuration file")
	listen := flag.StringP("listen", "l", "", "HTTP listen address, overrides the configuration")
	logLevel := flag.String("log-level", "", "log level, overrides the configuration")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.Infof("%s: Build %s, Time %s", repoName, sha1ver, buildTime)

	// Load configuration
	cfg, err := config.New(*configPath)
	utils.CheckFatal(err, "Failed to load configuration")

	if *listen != "" {
		cfg.HTTPListen = *listen
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if !utils.CheckWarn(err, "Invalid log level, keeping info") {
		logrus.SetLevel(level)
	}

	sudo := ""
	if cfg.UseSudo {
		sudo = cfg.Sudo
	}
	runner := command.NewExecRunner(sudo)

	var mon *monitor.Monitor
	if cfg.Watch {
		mon = monitor.New(
			monitor.Target{Name: "leases", Path: cfg.LeasesFile},
			monitor.Target{Name: "dhcpd.conf", Path: cfg.DhcpdConfigFile},
			monitor.Target{Name: "zones", Path: filepath.Clean(cfg.ZoneDir), Dir: true},
			monitor.Target{Name: "ddns", Path: cfg.DDNSStateFile},
		)
		utils.CheckFatal(mon.Start(), "Failed to start monitor")
		defer mon.Stop()
	}

	// Initialize web server
	webServer := web.NewServer(cfg, runner, mon, web.BuildInfo{
		Repo:   repoName,
		Commit: sha1ver,
		Time:   buildTime,
	})
	go func() {
		log.Infof("Starting HTTP server on %s", cfg.HTTPListen)
		utils.CheckFatal(webServer.Start(), "HTTP server failed")
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	utils.CheckWarn(webServer.Shutdown(ctx), "HTTP server shutdown")
}
