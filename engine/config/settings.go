package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override, e.g. OXY_FLY_MOTION_MAX_SPEED.
const EnvPrefix = "OXY_FLY_"

// Settings is the full tunable surface of a fly camera application.
type Settings struct {
	Window    WindowSettings  `yaml:"window" envPrefix:"WINDOW_"`
	Look      LookSettings    `yaml:"look" envPrefix:"LOOK_"`
	Motion    MotionSettings  `yaml:"motion" envPrefix:"MOTION_"`
	Gesture   GestureSettings `yaml:"gesture" envPrefix:"GESTURE_"`
	Remote    RemoteSettings  `yaml:"remote" envPrefix:"REMOTE_"`
	Profiling bool            `yaml:"profiling" env:"PROFILING"`
}

// WindowSettings configures the desktop host.
type WindowSettings struct {
	Width      int    `yaml:"width" env:"WIDTH"`
	Height     int    `yaml:"height" env:"HEIGHT"`
	Title      string `yaml:"title" env:"TITLE"`
	FrameLimit int    `yaml:"frame_limit" env:"FRAME_LIMIT"`
}

// LookSettings configures PoseCapture and pointer routing.
type LookSettings struct {
	Engagement    string  `yaml:"engagement" env:"ENGAGEMENT"`
	Sensitivity   float32 `yaml:"sensitivity" env:"SENSITIVITY"`
	TouchScale    float32 `yaml:"touch_scale" env:"TOUCH_SCALE"`
	DragLook      bool    `yaml:"drag_look" env:"DRAG_LOOK"`
	ClickToEngage bool    `yaml:"click_to_engage" env:"CLICK_TO_ENGAGE"`
	InitialYaw    float32 `yaml:"initial_yaw" env:"INITIAL_YAW"`
	InitialPitch  float32 `yaml:"initial_pitch" env:"INITIAL_PITCH"`
}

// MotionSettings configures MotionController.
type MotionSettings struct {
	MaxSpeed      float32 `yaml:"max_speed" env:"MAX_SPEED"`
	FlySpeed      float32 `yaml:"fly_speed" env:"FLY_SPEED"`
	Decay         float32 `yaml:"decay" env:"DECAY"`
	GestureSpeed  float32 `yaml:"gesture_speed" env:"GESTURE_SPEED"`
	ReferenceRate float32 `yaml:"reference_rate" env:"REFERENCE_RATE"`
	Release       string  `yaml:"release" env:"RELEASE"`
	BoostFactor   float32 `yaml:"boost_factor" env:"BOOST_FACTOR"`
	WheelScale    float32 `yaml:"wheel_scale" env:"WHEEL_SCALE"`
	WheelEase     float32 `yaml:"wheel_ease" env:"WHEEL_EASE"`
	WheelCurve    string  `yaml:"wheel_curve" env:"WHEEL_CURVE"`
}

// GestureSettings configures two-finger classification.
type GestureSettings struct {
	Pinch  float32 `yaml:"pinch" env:"PINCH"`
	Drag   float32 `yaml:"drag" env:"DRAG"`
	Rotate float32 `yaml:"rotate" env:"ROTATE"`
}

// RemoteSettings configures the WebSocket input bridge.
type RemoteSettings struct {
	Addr    string   `yaml:"addr" env:"ADDR"`
	Path    string   `yaml:"path" env:"PATH"`
	Origins []string `yaml:"origins" env:"ORIGINS" envSeparator:","`
}

// Defaults returns the settings used when neither file nor environment override a value.
func Defaults() Settings {
	return Settings{
		Window: WindowSettings{
			Width:  1280,
			Height: 720,
			Title:  "oxy-fly",
		},
		Look: LookSettings{
			Engagement:    "pointer-lock",
			Sensitivity:   0.002,
			TouchScale:    1.2,
			DragLook:      true,
			ClickToEngage: true,
		},
		Motion: MotionSettings{
			MaxSpeed:      50,
			FlySpeed:      2,
			Decay:         0.85,
			ReferenceRate: 60,
			Release:       "decay",
			BoostFactor:   2,
			WheelScale:    0.02,
			WheelCurve:    "out-quad",
		},
		Gesture: GestureSettings{
			Pinch:  12,
			Drag:   10,
			Rotate: 0.2,
		},
		Remote: RemoteSettings{
			Addr: ":8090",
			Path: "/ws",
		},
	}
}

// Load builds settings from defaults, then the YAML file at path (skipped when path is
// empty), then OXY_FLY_ environment variables, and validates the result.
//
// Parameters:
//   - path: YAML file path, may be empty
//
// Returns:
//   - Settings: the merged settings
//   - error: read, parse or validation failure
func Load(path string) (Settings, error) {
	s := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return s, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := decodeYAML(data, &s); err != nil {
			return s, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(&s, env.Options{Prefix: EnvPrefix}); err != nil {
		return s, fmt.Errorf("config: parse env: %w", err)
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

func decodeYAML(data []byte, s *Settings) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate reports every out-of-range value at once.
//
// Returns:
//   - error: joined field errors, nil when the settings are usable
func (s Settings) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("config: "+format, args...))
		}
	}

	check(s.Window.Width > 0 && s.Window.Height > 0, "window size %dx%d must be positive", s.Window.Width, s.Window.Height)
	check(s.Window.FrameLimit >= 0, "window.frame_limit %d must not be negative", s.Window.FrameLimit)

	_, err := parseEngagement(s.Look.Engagement)
	check(err == nil, "look.engagement %q must be pointer-lock, always or per-touch", s.Look.Engagement)
	check(s.Look.Sensitivity > 0, "look.sensitivity %v must be positive", s.Look.Sensitivity)
	check(s.Look.TouchScale > 0, "look.touch_scale %v must be positive", s.Look.TouchScale)

	check(s.Motion.MaxSpeed > 0, "motion.max_speed %v must be positive", s.Motion.MaxSpeed)
	check(s.Motion.FlySpeed > 0, "motion.fly_speed %v must be positive", s.Motion.FlySpeed)
	check(s.Motion.Decay > 0 && s.Motion.Decay < 1, "motion.decay %v must be in (0, 1)", s.Motion.Decay)
	check(s.Motion.GestureSpeed >= 0, "motion.gesture_speed %v must not be negative", s.Motion.GestureSpeed)
	check(s.Motion.ReferenceRate >= 0, "motion.reference_rate %v must not be negative", s.Motion.ReferenceRate)
	_, err = parseRelease(s.Motion.Release)
	check(err == nil, "motion.release %q must be decay or stop", s.Motion.Release)
	check(s.Motion.BoostFactor >= 1, "motion.boost_factor %v must be at least 1", s.Motion.BoostFactor)
	check(s.Motion.WheelEase >= 0, "motion.wheel_ease %v must not be negative", s.Motion.WheelEase)
	_, ok := easeCurves[s.Motion.WheelCurve]
	check(ok, "motion.wheel_curve %q is not a known curve", s.Motion.WheelCurve)

	check(s.Gesture.Pinch > 0, "gesture.pinch %v must be positive", s.Gesture.Pinch)
	check(s.Gesture.Drag > 0, "gesture.drag %v must be positive", s.Gesture.Drag)
	check(s.Gesture.Rotate >= 0, "gesture.rotate %v must not be negative", s.Gesture.Rotate)

	check(s.Remote.Path != "" && s.Remote.Path[0] == '/', "remote.path %q must start with /", s.Remote.Path)

	return errors.Join(errs...)
}
