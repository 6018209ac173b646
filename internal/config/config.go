// Package config loads viewer settings from a TOML file and the
// environment. Environment variables use the GRAPHVIEW prefix followed by
// the section and key, e.g. GRAPHVIEW_WINDOW_WIDTH or
// GRAPHVIEW_RENDER_BATCH_EDGES.
package config

import (
	"os"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/wesen/graphview/internal/backend"
	"github.com/wesen/graphview/internal/scene"
	"github.com/wesen/graphview/internal/viewport"
	"github.com/wesen/graphview/pkg/colors"
	"github.com/wesen/graphview/pkg/errors"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "GRAPHVIEW"

type Config struct {
	Window WindowConfig `toml:"window"`
	View   ViewConfig   `toml:"view"`
	Fonts  FontConfig   `toml:"fonts"`
	Render RenderConfig `toml:"render"`
	Nodes  NodeConfig   `toml:"nodes"`
	Edges  EdgeConfig   `toml:"edges"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	MaxFPS int    `toml:"max_fps" envconfig:"MAX_FPS"`
}

type ViewConfig struct {
	ZoomBase float64 `toml:"zoom_base" envconfig:"ZOOM_BASE"`
	DebugKey string  `toml:"debug_key" envconfig:"DEBUG_KEY"`
}

type FontConfig struct {
	Label     string `toml:"label"`
	LabelSize int    `toml:"label_size" envconfig:"LABEL_SIZE"`
	Debug     string `toml:"debug"`
	DebugSize int    `toml:"debug_size" envconfig:"DEBUG_SIZE"`
}

type RenderConfig struct {
	ClearColor     string `toml:"clear_color" envconfig:"CLEAR_COLOR"`
	BatchEdges     bool   `toml:"batch_edges" envconfig:"BATCH_EDGES"`
	Debug          bool   `toml:"debug"`
	ShowNodes      bool   `toml:"show_nodes" envconfig:"SHOW_NODES"`
	ShowNodeLabels bool   `toml:"show_node_labels" envconfig:"SHOW_NODE_LABELS"`
	ShowEdges      bool   `toml:"show_edges" envconfig:"SHOW_EDGES"`
	ShowEdgeLabels bool   `toml:"show_edge_labels" envconfig:"SHOW_EDGE_LABELS"`
}

type NodeConfig struct {
	Size             float64 `toml:"size"`
	Color            string  `toml:"color"`
	Icon             string  `toml:"icon"`
	OutlineThickness float64 `toml:"outline_thickness" envconfig:"OUTLINE_THICKNESS"`
	OutlineColor     string  `toml:"outline_color" envconfig:"OUTLINE_COLOR"`
}

type EdgeConfig struct {
	Color     string  `toml:"color"`
	Thickness float64 `toml:"thickness"`
	Dashed    bool    `toml:"dashed"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:  scene.DefaultWidth,
			Height: scene.DefaultHeight,
			Title:  "graphview",
			MaxFPS: scene.DefaultMaxFPS,
		},
		View: ViewConfig{
			ZoomBase: viewport.DefaultZoomBase,
			DebugKey: string(viewport.DefaultDebugKey),
		},
		Fonts: FontConfig{
			Label:     backend.BuiltinRegular,
			LabelSize: scene.DefaultLabelFontSize,
			Debug:     backend.BuiltinMono,
			DebugSize: scene.DefaultDebugFontSize,
		},
		Render: RenderConfig{
			ClearColor:     "white",
			ShowNodes:      true,
			ShowNodeLabels: true,
			ShowEdges:      true,
			ShowEdgeLabels: true,
		},
		Nodes: NodeConfig{
			Size:             scene.DefaultNodeSize,
			Color:            colors.Hex(scene.DefaultNodeColor),
			OutlineThickness: scene.DefaultNodeOutline,
			OutlineColor:     colors.Hex(scene.DefaultNodeOutlineColor),
		},
		Edges: EdgeConfig{
			Color:     colors.Hex(scene.DefaultEdgeColor),
			Thickness: scene.DefaultEdgeThickness,
		},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrap(errors.ErrCodeResourceLoad, err, "read config %s", path)
		}
		if err := Decode(data, &cfg); err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
		}
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s_* environment", EnvPrefix)
	}
	return cfg, nil
}

// Decode parses TOML into cfg, keeping the values of absent keys. Unknown
// keys are rejected.
func Decode(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.New(errors.ErrCodeInvalidInput, "unknown config key %q", undecoded[0].String())
	}
	return nil
}

// SceneOptions converts the settings and validates them.
func (c Config) SceneOptions() (scene.Options, error) {
	var opts scene.Options

	clearColor, err := colors.Parse(c.Render.ClearColor)
	if err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "render.clear_color")
	}
	nodeColor, err := colors.Parse(c.Nodes.Color)
	if err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "nodes.color")
	}
	outlineColor, err := colors.Parse(c.Nodes.OutlineColor)
	if err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "nodes.outline_color")
	}
	edgeColor, err := colors.Parse(c.Edges.Color)
	if err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "edges.color")
	}

	if c.View.ZoomBase <= 1 {
		return opts, errors.New(errors.ErrCodeInvalidInput, "view.zoom_base must be > 1, got %v", c.View.ZoomBase)
	}
	if utf8.RuneCountInString(c.View.DebugKey) != 1 {
		return opts, errors.New(errors.ErrCodeInvalidInput, "view.debug_key must be one character, got %q", c.View.DebugKey)
	}
	debugKey, _ := utf8.DecodeRuneInString(c.View.DebugKey)
	if c.Fonts.LabelSize <= 0 || c.Fonts.DebugSize <= 0 {
		return opts, errors.New(errors.ErrCodeInvalidInput, "font sizes must be positive, got %d and %d", c.Fonts.LabelSize, c.Fonts.DebugSize)
	}

	nodes := scene.NodeDefaults{
		Size:             c.Nodes.Size,
		Color:            nodeColor,
		Icon:             c.Nodes.Icon,
		OutlineThickness: c.Nodes.OutlineThickness,
		OutlineColor:     outlineColor,
	}
	if err := nodes.Validate(); err != nil {
		return opts, err
	}
	edges := scene.EdgeDefaults{
		Color:     edgeColor,
		Thickness: c.Edges.Thickness,
		Dashed:    c.Edges.Dashed,
	}
	if err := edges.Validate(); err != nil {
		return opts, err
	}

	return scene.Options{
		Title:          c.Window.Title,
		LabelFont:      c.Fonts.Label,
		LabelFontSize:  c.Fonts.LabelSize,
		DebugFont:      c.Fonts.Debug,
		DebugFontSize:  c.Fonts.DebugSize,
		ClearColor:     clearColor,
		MaxFPS:         c.Window.MaxFPS,
		ZoomBase:       c.View.ZoomBase,
		DebugKey:       debugKey,
		Batching:       c.Render.BatchEdges,
		Debug:          c.Render.Debug,
		HideNodes:      !c.Render.ShowNodes,
		HideNodeLabels: !c.Render.ShowNodeLabels,
		HideEdges:      !c.Render.ShowEdges,
		HideEdgeLabels: !c.Render.ShowEdgeLabels,
		NodeDefaults:   &nodes,
		EdgeDefaults:   &edges,
	}, nil
}
