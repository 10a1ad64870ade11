package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bondar-aleksandr/sros_device_info/internal/connection"
	"github.com/bondar-aleksandr/sros_device_info/internal/device"
	"github.com/bondar-aleksandr/sros_device_info/internal/logger"
	"github.com/gocarina/gocsv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// supported per-device report formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type App struct {
	Logger     *zap.SugaredLogger
	ConfigPath string
	Config     *Config
}

func NewApp(cfgPath string) (*App, error) {
	app := &App{
		ConfigPath: cfgPath,
	}
	l, err := logger.InitLogger(cfgPath)
	if err != nil {
		return nil, err
	}
	app.Logger = l
	if err := app.readConfig(); err != nil {
		return nil, err
	}
	if err := app.prepareDirectory(); err != nil {
		return nil, err
	}
	return app, nil
}

// type for app-level config
type Config struct {
	Client connection.Options
	Data   DataConfig
}

// "data" section of config.yml
type DataConfig struct {
	InputFolder  string `yaml:"input_folder"`
	DevicesData  string `yaml:"devices_data"`
	OutputFolder string `yaml:"output_folder"`
	ResultsData  string `yaml:"results_data"`
	OutputFormat string `yaml:"output_format"`
}

func (c *Config) setDefaults() {
	if c.Client.SSHTimeout == 0 {
		c.Client.SSHTimeout = 10
	}
	if c.Client.SnmpTimeout == 0 {
		c.Client.SnmpTimeout = 5
	}
	if c.Data.InputFolder == "" {
		c.Data.InputFolder = "./input"
	}
	if c.Data.DevicesData == "" {
		c.Data.DevicesData = "devices.csv"
	}
	if c.Data.OutputFolder == "" {
		c.Data.OutputFolder = "./output"
	}
	if c.Data.ResultsData == "" {
		c.Data.ResultsData = "results.txt"
	}
	if c.Data.OutputFormat == "" {
		c.Data.OutputFormat = FormatJSON
	}
}

func (c *Config) validate() error {
	switch c.Data.OutputFormat {
	case FormatJSON, FormatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output_format %q, use %q or %q", c.Data.OutputFormat, FormatJSON, FormatYAML)
	}
}

// this func Unmarshals config.yml content to config variable
func (a *App) readConfig() error {
	a.Logger.Info("Reading config...")

	f, err := os.Open(a.ConfigPath)
	if err != nil {
		a.Logger.Errorf("Cannot read app config file because of: %s", err)
		return err
	}
	defer f.Close()

	cfg := &Config{}

	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(cfg)
	if err != nil {
		a.Logger.Errorf("Cannot parse app config file because of: %s", err)
		return err
	}
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		a.Logger.Error(err)
		return err
	}
	a.Config = cfg
	a.Logger.Infow("Reading config done",
		"input", filepath.Join(cfg.Data.InputFolder, cfg.Data.DevicesData),
		"output", cfg.Data.OutputFolder,
		"format", cfg.Data.OutputFormat,
	)
	return nil
}

// this func creates directory for storing outputs if it doesn't exists before
func (a *App) prepareDirectory() error {
	a.Logger.Info("Creating output directory if not exists...")
	outDir := filepath.Join(a.Config.Data.OutputFolder)
	_, err := os.Stat(outDir)

	if os.IsNotExist(err) {
		errDir := os.MkdirAll(outDir, os.ModePerm)
		if errDir != nil {
			a.Logger.Errorf("Cannot create directory for outputs because of: %q", errDir)
			return errDir
		}
		a.Logger.Infof("Created output directory %q successfully", outDir)
	} else {
		a.Logger.Info("Output directory already there")
	}
	return nil
}

// parses CSV with devices info to memory
func (a *App) LoadDevices() ([]*device.Device, error) {
	a.Logger.Info("Decoding devices data...")
	deviceFile, err := os.Open(filepath.Join(a.Config.Data.InputFolder, a.Config.Data.DevicesData))
	if err != nil {
		return nil, err
	}
	defer deviceFile.Close()

	var devices []*device.Device
	if err := gocsv.UnmarshalFile(deviceFile, &devices); err != nil {
		return nil, fmt.Errorf("cannot unmarshal CSV from file because of: %w", err)
	}
	a.Logger.Infof("Decoding devices data done, %d devices found", len(devices))
	return devices, nil
}
