package domain

import "fmt"

// AspectRatio is the output frame ratio for generated images and video.
type AspectRatio string

const (
	Aspect16x9 AspectRatio = "16:9"
	Aspect9x16 AspectRatio = "9:16"
	Aspect1x1  AspectRatio = "1:1"
	Aspect4x3  AspectRatio = "4:3"
	Aspect3x4  AspectRatio = "3:4"
)

// ImageResolution selects the render size on models that support it.
// The image fallback model ignores it entirely; see studio.GenerateImage.
type ImageResolution string

const (
	Res1K ImageResolution = "1K"
	Res2K ImageResolution = "2K"
	Res4K ImageResolution = "4K"
)

// VideoMode selects the downstream video rendering profile.
type VideoMode string

const (
	VideoModeQuality VideoMode = "quality"
	VideoModeFast    VideoMode = "fast"
)

const (
	// MinSceneCount and MaxSceneCount bound the requested storyboard
	// length. A reference video overrides the count entirely.
	MinSceneCount = 1
	MaxSceneCount = 10
	// MaxReferenceImages caps reference images attached to an image
	// generation request.
	MaxReferenceImages = 5
)

// ReferenceVideo is an optional uploaded clip that drives scene
// detection instead of the requested scene count.
type ReferenceVideo struct {
	MIMEType string
	Data     []byte
}

// ProductInput is everything the user supplied about the product before
// script generation.
type ProductInput struct {
	Images           [][]byte
	Title            string
	Description      string
	CreativeNotes    string
	Platform         string
	TargetMarket     string
	ModelImages      [][]byte
	BackgroundImages [][]byte
	ReferenceVideo   *ReferenceVideo
}

// Validate rejects inputs that cannot produce a script before any
// remote call is attempted.
func (p *ProductInput) Validate() error {
	if len(p.Images) == 0 && p.ReferenceVideo == nil {
		return ErrNoProductMedia
	}
	return nil
}

// GenerationSettings carries the user's storyboard preferences. The
// scene count is updated after analysis to match what the model
// actually returned.
type GenerationSettings struct {
	AspectRatio AspectRatio
	Resolution  ImageResolution
	VideoMode   VideoMode
	SceneCount  int
}

// Normalize applies defaults and clamps the scene count into range.
func (s *GenerationSettings) Normalize() {
	if s == nil {
		return
	}
	if s.AspectRatio == "" {
		s.AspectRatio = Aspect9x16
	}
	if s.Resolution == "" {
		s.Resolution = Res2K
	}
	if s.VideoMode == "" {
		s.VideoMode = VideoModeQuality
	}
	if s.SceneCount < MinSceneCount {
		s.SceneCount = MinSceneCount
	}
	if s.SceneCount > MaxSceneCount {
		s.SceneCount = MaxSceneCount
	}
}

// Validate ensures the settings satisfy the contract after Normalize.
func (s GenerationSettings) Validate() error {
	switch s.AspectRatio {
	case Aspect16x9, Aspect9x16, Aspect1x1, Aspect4x3, Aspect3x4:
	default:
		return fmt.Errorf("aspect_ratio must be one of 16:9, 9:16, 1:1, 4:3, 3:4")
	}
	switch s.Resolution {
	case Res1K, Res2K, Res4K:
	default:
		return fmt.Errorf("resolution must be one of 1K, 2K, 4K")
	}
	if s.SceneCount < MinSceneCount || s.SceneCount > MaxSceneCount {
		return fmt.Errorf("scene count must be between %d and %d", MinSceneCount, MaxSceneCount)
	}
	return nil
}
