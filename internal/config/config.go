package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// FileName is the optional config file looked up in the config directory.
const FileName = "showroom.json"

// EnvPrefix prefixes environment overrides, e.g. SHOWROOM_WINDOW_WIDTH.
const EnvPrefix = "SHOWROOM"

type Window struct {
	Width     int    `mapstructure:"width" json:"width"`
	Height    int    `mapstructure:"height" json:"height"`
	Title     string `mapstructure:"title" json:"title"`
	TargetFPS int    `mapstructure:"targetFPS" json:"targetFPS"`
	MSAA      bool   `mapstructure:"msaa" json:"msaa"`
}

// Camera holds the showroom first-person camera settings.
type Camera struct {
	FOV         float32    `mapstructure:"fov" json:"fov"`
	Near        float32    `mapstructure:"near" json:"near"`
	Far         float32    `mapstructure:"far" json:"far"`
	Speed       float32    `mapstructure:"speed" json:"speed"`
	Sensitivity float32    `mapstructure:"sensitivity" json:"sensitivity"`
	Start       [3]float32 `mapstructure:"start" json:"start"`
}

// Keys maps action names (forward, backward, left, right, pause) to key names.
type Keys map[string]string

type Assets struct {
	Root       string `mapstructure:"root" json:"root"`
	Catalog    string `mapstructure:"catalog" json:"catalog"`
	Garage     string `mapstructure:"garage" json:"garage"`
	FloorImage string `mapstructure:"floorImage" json:"floorImage"`
	Poster     string `mapstructure:"poster" json:"poster"`
	Skybox     string `mapstructure:"skybox" json:"skybox"`
	Fonts      string `mapstructure:"fonts" json:"fonts"`
	Stylesheet string `mapstructure:"stylesheet" json:"stylesheet"`
	DefaultCar string `mapstructure:"defaultCar" json:"defaultCar"`
	// MaxTextureEdge bounds the longest edge of decoded images.
	MaxTextureEdge int `mapstructure:"maxTextureEdge" json:"maxTextureEdge"`
	// UploadsPerFrame bounds GPU uploads serviced each frame.
	UploadsPerFrame int `mapstructure:"uploadsPerFrame" json:"uploadsPerFrame"`
}

type Storage struct {
	Backend string `mapstructure:"backend" json:"backend"`
	Path    string `mapstructure:"path" json:"path"`
}

type Log struct {
	Level string `mapstructure:"level" json:"level"`
	File  string `mapstructure:"file" json:"file"`
}

// Debug holds the overlay toggles. They are saved back when changed at runtime.
type Debug struct {
	ShowFPS      bool `mapstructure:"showFPS" json:"showFPS"`
	ShowMemAlloc bool `mapstructure:"showMemAlloc" json:"showMemAlloc"`
	GridVisible  bool `mapstructure:"gridVisible" json:"gridVisible"`
}

type Podium struct {
	Model           string  `mapstructure:"model" json:"model"`
	Scale           float32 `mapstructure:"scale" json:"scale"`
	AutoRotate      bool    `mapstructure:"autoRotate" json:"autoRotate"`
	AutoRotateSpeed float32 `mapstructure:"autoRotateSpeed" json:"autoRotateSpeed"`
	FOV             float32 `mapstructure:"fov" json:"fov"`
}

// Config is the typed view of every setting.
type Config struct {
	Window  Window  `mapstructure:"window" json:"window"`
	Camera  Camera  `mapstructure:"camera" json:"camera"`
	Keys    Keys    `mapstructure:"keys" json:"keys"`
	Assets  Assets  `mapstructure:"assets" json:"assets"`
	Storage Storage `mapstructure:"storage" json:"storage"`
	Log     Log     `mapstructure:"log" json:"log"`
	Debug   Debug   `mapstructure:"debug" json:"debug"`
	Podium  Podium  `mapstructure:"podium" json:"podium"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.title", "Car Showroom")
	v.SetDefault("window.targetFPS", 60)
	v.SetDefault("window.msaa", true)

	v.SetDefault("camera.fov", 75)
	v.SetDefault("camera.near", 1.0)
	v.SetDefault("camera.far", 10000)
	v.SetDefault("camera.speed", 200)
	v.SetDefault("camera.sensitivity", 0.002)
	v.SetDefault("camera.start", []float32{300, 100, 1000})

	v.SetDefault("keys.forward", "W")
	v.SetDefault("keys.backward", "S")
	v.SetDefault("keys.left", "A")
	v.SetDefault("keys.right", "D")
	v.SetDefault("keys.pause", "P")

	v.SetDefault("assets.root", "assets")
	v.SetDefault("assets.catalog", "")
	v.SetDefault("assets.garage", "garage/garage.glb")
	v.SetDefault("assets.floorImage", "textures/cracked-cement.jpg")
	v.SetDefault("assets.poster", "textures/cracked-cement.jpg")
	v.SetDefault("assets.skybox", "BoxPieces")
	v.SetDefault("assets.fonts", "fonts")
	v.SetDefault("assets.stylesheet", "ui/showroom.css")
	v.SetDefault("assets.defaultCar", "Car/Car.fbx")
	v.SetDefault("assets.maxTextureEdge", 2048)
	v.SetDefault("assets.uploadsPerFrame", 2)

	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.path", "data/showroom-storage.json")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "logs/showroom.log")

	v.SetDefault("debug.showFPS", false)
	v.SetDefault("debug.showMemAlloc", false)
	v.SetDefault("debug.gridVisible", true)

	v.SetDefault("podium.model", "podium/podium.glb")
	v.SetDefault("podium.scale", 0.5)
	v.SetDefault("podium.autoRotate", true)
	v.SetDefault("podium.autoRotateSpeed", 0.5)
	v.SetDefault("podium.fov", 45)
}

// Default returns the built-in settings.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	_ = v.Unmarshal(&c)
	return c
}

// Load reads showroom.json from dir on top of the defaults, then applies
// SHOWROOM_* environment overrides, including those listed in dir/.env. A missing file is not an error; a file
// that does not parse is.
func Load(dir string) (Config, error) {
	if err := loadDotEnv(filepath.Join(dir, DotEnvName)); err != nil {
		return Config{}, err
	}
	v := viper.New()
	setDefaults(v)
	v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
	v.SetConfigType("json")
	v.AddConfigPath(dir)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}

// SaveDebug writes the debug toggles into dir/showroom.json, keeping every
// other key already in the file.
func SaveDebug(dir string, d Debug) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	path := filepath.Join(dir, FileName)
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}
	v.Set("debug.showFPS", d.ShowFPS)
	v.Set("debug.showMemAlloc", d.ShowMemAlloc)
	v.Set("debug.gridVisible", d.GridVisible)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
