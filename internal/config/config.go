package config

import (
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

var log = logrus.WithField("prefix", "config")

// Config holds all application configuration
type Config struct {
	// File paths
	LeasesFile      string
	DhcpdConfigFile string
	ZoneDir         string
	ZonePrefix      string
	DDNSStateFile   string

	// Network settings
	HTTPListen string

	// Binary paths
	Sudo            string
	Rndc            string
	DDNSInterpreter string
	DDNSScript      string
	DDNSZones       string

	// Feature flags
	UseSudo bool
	Watch   bool
	Metrics bool

	LogLevel string
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		LeasesFile:      "/var/lib/dhcp/dhcpd.leases",
		DhcpdConfigFile: "/etc/dhcp/dhcpd.conf",
		ZoneDir:         "/etc/bind/zones",
		ZonePrefix:      "db.",
		DDNSStateFile:   "/opt/cloudflare-ddns/ip.json",
		HTTPListen:      "127.0.0.1:8080",
		Sudo:            "/usr/bin/sudo",
		Rndc:            "/usr/sbin/rndc",
		DDNSInterpreter: "/usr/bin/python3",
		DDNSScript:      "/opt/cloudflare-ddns/cloudflare_ddns.py",
		DDNSZones:       "/opt/cloudflare-ddns/zones-public.json",
		UseSudo:         true,
		Watch:           true,
		Metrics:         true,
		LogLevel:        "info",
	}
}

// LoadFromFile loads configuration from INI file
func (c *Config) LoadFromFile(filename string) error {
	cfg, err := ini.LoadSources(ini.LoadOptions{Insensitive: true}, filename)
	if err != nil {
		log.Warnf("Skipping config file %s: %s", filename, err)
		return err
	}

	section := cfg.Section("")
	c.LeasesFile = section.Key("leasesfile").MustString(c.LeasesFile)
	c.DhcpdConfigFile = section.Key("dhcpdconfigfile").MustString(c.DhcpdConfigFile)
	c.ZoneDir = section.Key("zonedir").MustString(c.ZoneDir)
	c.ZonePrefix = section.Key("zoneprefix").MustString(c.ZonePrefix)
	c.DDNSStateFile = section.Key("ddnsstatefile").MustString(c.DDNSStateFile)
	c.HTTPListen = section.Key("httplisten").MustString(c.HTTPListen)
	c.Sudo = section.Key("sudo").MustString(c.Sudo)
	c.Rndc = section.Key("rndc").MustString(c.Rndc)
	c.DDNSInterpreter = section.Key("ddnsinterpreter").MustString(c.DDNSInterpreter)
	c.DDNSScript = section.Key("ddnsscript").MustString(c.DDNSScript)
	c.DDNSZones = section.Key("ddnszones").MustString(c.DDNSZones)
	c.UseSudo = section.Key("usesudo").MustBool(c.UseSudo)
	c.Watch = section.Key("watch").MustBool(c.Watch)
	c.Metrics = section.Key("metrics").MustBool(c.Metrics)
	c.LogLevel = section.Key("loglevel").MustString(c.LogLevel)

	return nil
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() {
	stringVars := map[string]*string{
		"LEASESFILE":      &c.LeasesFile,
		"DHCPDCONFIGFILE": &c.DhcpdConfigFile,
		"ZONEDIR":         &c.ZoneDir,
		"ZONEPREFIX":      &c.ZonePrefix,
		"DDNSSTATEFILE":   &c.DDNSStateFile,
		"HTTPLISTEN":      &c.HTTPListen,
		"SUDO":            &c.Sudo,
		"RNDC":            &c.Rndc,
		"DDNSINTERPRETER": &c.DDNSInterpreter,
		"DDNSSCRIPT":      &c.DDNSScript,
		"DDNSZONES":       &c.DDNSZones,
		"LOGLEVEL":        &c.LogLevel,
	}
	for name, dst := range stringVars {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	boolVars := map[string]*bool{
		"USESUDO": &c.UseSudo,
		"WATCH":   &c.Watch,
		"METRICS": &c.Metrics,
	}
	for name, dst := range boolVars {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Warnf("Ignoring %s=%q: %v", name, v, err)
			continue
		}
		*dst = b
	}
}

// New creates a new configuration instance
func New(configFile string) (*Config, error) {
	cfg := DefaultConfig()

	// A missing file is not fatal, defaults and environment still apply
	cfg.LoadFromFile(configFile)

	cfg.LoadFromEnv()

	return cfg, nil
}
