package aiornot

import (
	"encoding/json"
	"fmt"
	"time"
)

// Verdict is the service's classification for analyzed content.
type Verdict string

const (
	VerdictAI      Verdict = "ai"
	VerdictHuman   Verdict = "human"
	VerdictUnknown Verdict = "unknown"
)

// String returns the string representation of the verdict.
func (v Verdict) String() string {
	return string(v)
}

// ImageAnalysisType selects which analyses run for an image report.
type ImageAnalysisType string

const (
	ImageAnalysisAIGenerated   ImageAnalysisType = "ai_generated"
	ImageAnalysisDeepfake      ImageAnalysisType = "deepfake"
	ImageAnalysisNSFW          ImageAnalysisType = "nsfw"
	ImageAnalysisQuality       ImageAnalysisType = "quality"
	ImageAnalysisReverseSearch ImageAnalysisType = "reverse_search"
)

// ImageAnalysisTypes lists every analysis type accepted by the image endpoint.
func ImageAnalysisTypes() []ImageAnalysisType {
	return []ImageAnalysisType{
		ImageAnalysisAIGenerated,
		ImageAnalysisDeepfake,
		ImageAnalysisNSFW,
		ImageAnalysisQuality,
		ImageAnalysisReverseSearch,
	}
}

// VideoAnalysisType selects which analyses run for a video report.
type VideoAnalysisType string

const (
	VideoAnalysisAIVideo       VideoAnalysisType = "ai_video"
	VideoAnalysisAIMusic       VideoAnalysisType = "ai_music"
	VideoAnalysisAIVoice       VideoAnalysisType = "ai_voice"
	VideoAnalysisDeepfakeVideo VideoAnalysisType = "deepfake_video"
)

// VideoAnalysisTypes lists every analysis type accepted by the video endpoint.
func VideoAnalysisTypes() []VideoAnalysisType {
	return []VideoAnalysisType{
		VideoAnalysisAIVideo,
		VideoAnalysisAIMusic,
		VideoAnalysisAIVoice,
		VideoAnalysisDeepfakeVideo,
	}
}

// ReportStatus is the processing status of an individual analysis facet.
type ReportStatus string

const (
	ReportStatusProcessed ReportStatus = "processed"
	ReportStatusRejected  ReportStatus = "rejected"
	ReportStatusErrored   ReportStatus = "errored"
)

// Prediction is a detection flag with its confidence score in [0, 1].
type Prediction struct {
	IsDetected bool    `json:"is_detected"`
	Confidence float64 `json:"confidence"`
}

// GeneratorScheme holds per-generator predictions for known AI image
// generators.
type GeneratorScheme struct {
	Midjourney              Prediction `json:"midjourney"`
	DallE                   Prediction `json:"dall_e"`
	StableDiffusion         Prediction `json:"stable_diffusion"`
	ThisPersonDoesNotExist  Prediction `json:"this_person_does_not_exist"`
	AdobeFirefly            Prediction `json:"adobe_firefly"`
	Flux                    Prediction `json:"flux"`
	FourO                   Prediction `json:"four_o"`
}

// Top returns the name and prediction of the generator with the highest
// confidence.
func (g *GeneratorScheme) Top() (string, Prediction) {
	candidates := []struct {
		name string
		pred Prediction
	}{
		{"Midjourney", g.Midjourney},
		{"DALL-E", g.DallE},
		{"Stable Diffusion", g.StableDiffusion},
		{"This Person Does Not Exist", g.ThisPersonDoesNotExist},
		{"Adobe Firefly", g.AdobeFirefly},
		{"Flux", g.Flux},
		{"4o", g.FourO},
	}
	top := candidates[0]
	for _, c := range candidates[1:] {
		if c.pred.Confidence > top.pred.Confidence {
			top = c
		}
	}
	return top.name, top.pred
}

// AIGeneratedReport is the primary AI-vs-human analysis for an image.
type AIGeneratedReport struct {
	Verdict   Verdict          `json:"verdict"`
	AI        Prediction       `json:"ai"`
	Human     Prediction       `json:"human"`
	Generator *GeneratorScheme `json:"generator,omitempty"`
}

// BBox is a bounding box in pixel coordinates.
type BBox struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// RoiReport is a region-of-interest detection with its bounding box.
type RoiReport struct {
	IsDetected bool    `json:"is_detected"`
	Confidence float64 `json:"confidence"`
	BBox       BBox    `json:"bbox"`
}

// DeepfakeReport is the face-manipulation analysis for an image.
type DeepfakeReport struct {
	IsDetected bool        `json:"is_detected"`
	Confidence float64     `json:"confidence"`
	Rois       []RoiReport `json:"rois,omitempty"`
}

// DeepfakeVideoReport is the face-manipulation analysis for a video.
type DeepfakeVideoReport struct {
	IsDetected   bool    `json:"is_detected"`
	Confidence   float64 `json:"confidence"`
	NoFacesFound bool    `json:"no_faces_found"`
}

// NSFWReport is the not-safe-for-work analysis facet.
type NSFWReport struct {
	IsDetected bool   `json:"is_detected"`
	Version    string `json:"version,omitempty"`
}

// QualityReport is the image quality facet.
type QualityReport struct {
	IsDetected bool `json:"is_detected"`
}

// ReverseSearchMatch is one match found by reverse image search.
type ReverseSearchMatch struct {
	Domain             string `json:"domain"`
	ImageURL           string `json:"image_url"`
	Width              int    `json:"width"`
	Height             int    `json:"height"`
	EarliestCrawlDate  string `json:"earliest_crawl_date"`
	EarliestBacklink   string `json:"earliest_backlink"`
}

// ReverseSearchReport is the reverse image search facet.
type ReverseSearchReport struct {
	WasFound bool                 `json:"was_found"`
	Matches  []ReverseSearchMatch `json:"matches,omitempty"`
}

// ImageMetadata describes the analyzed image.
type ImageMetadata struct {
	Width            int                     `json:"width,omitempty"`
	Height           int                     `json:"height,omitempty"`
	Format           string                  `json:"format,omitempty"`
	SizeBytes        int64                   `json:"size_bytes,omitempty"`
	MD5              string                  `json:"md5,omitempty"`
	ProcessingStatus map[string]ReportStatus `json:"processing_status,omitempty"`
}

// ImageReport holds every analysis facet returned for an image.
type ImageReport struct {
	AIGenerated   *AIGeneratedReport   `json:"ai_generated,omitempty"`
	Deepfake      *DeepfakeReport      `json:"deepfake,omitempty"`
	NSFW          *NSFWReport          `json:"nsfw,omitempty"`
	Quality       *QualityReport       `json:"quality,omitempty"`
	ReverseSearch *ReverseSearchReport `json:"reverse_search,omitempty"`
	Meta          ImageMetadata        `json:"meta"`
}

// ImageReportResponse is the full response from the image analysis endpoint.
type ImageReportResponse struct {
	ID         string      `json:"id"`
	CreatedAt  *time.Time  `json:"created_at,omitempty"`
	Report     ImageReport `json:"report"`
	ExternalID string      `json:"external_id,omitempty"`
}

// Verdict returns the AI detection verdict, or VerdictUnknown when the
// ai_generated facet was not run.
func (r *ImageReportResponse) Verdict() Verdict {
	if r.Report.AIGenerated != nil {
		return r.Report.AIGenerated.Verdict
	}
	return VerdictUnknown
}

// Confidence returns the AI detection confidence, or 0 when the ai_generated
// facet was not run.
func (r *ImageReportResponse) Confidence() float64 {
	if r.Report.AIGenerated != nil {
		return r.Report.AIGenerated.AI.Confidence
	}
	return 0
}

// IsAI reports whether the image was classified as AI-generated.
func (r *ImageReportResponse) IsAI() bool {
	return r.Verdict() == VerdictAI
}

// IsDeepfake reports whether a deepfake was detected.
func (r *ImageReportResponse) IsDeepfake() bool {
	return r.Report.Deepfake != nil && r.Report.Deepfake.IsDetected
}

// IsNSFW reports whether NSFW content was detected.
func (r *ImageReportResponse) IsNSFW() bool {
	return r.Report.NSFW != nil && r.Report.NSFW.IsDetected
}

// VideoMetadata describes the analyzed video.
type VideoMetadata struct {
	Duration   int    `json:"duration"`
	TotalBytes int64  `json:"total_bytes"`
	MD5        string `json:"md5"`
	Audio      string `json:"audio"`
	Video      string `json:"video"`
}

// VideoReport holds every analysis facet returned for a video.
type VideoReport struct {
	AIVideo       Prediction           `json:"ai_video"`
	AIVoice       *Prediction          `json:"ai_voice,omitempty"`
	AIMusic       *Prediction          `json:"ai_music,omitempty"`
	DeepfakeVideo *DeepfakeVideoReport `json:"deepfake_video,omitempty"`
	Meta          VideoMetadata        `json:"meta"`
}

// VideoReportResponse is the full response from the video analysis endpoint.
type VideoReportResponse struct {
	ID         string      `json:"id"`
	CreatedAt  *time.Time  `json:"created_at,omitempty"`
	Report     VideoReport `json:"report"`
	ExternalID string      `json:"external_id,omitempty"`
}

// Verdict returns the AI video verdict.
func (r *VideoReportResponse) Verdict() Verdict {
	if r.Report.AIVideo.IsDetected {
		return VerdictAI
	}
	return VerdictHuman
}

// Confidence returns the AI video detection confidence.
func (r *VideoReportResponse) Confidence() float64 {
	return r.Report.AIVideo.Confidence
}

// IsAI reports whether AI-generated video was detected.
func (r *VideoReportResponse) IsAI() bool {
	return r.Report.AIVideo.IsDetected
}

// IsDeepfake reports whether deepfake video was detected.
func (r *VideoReportResponse) IsDeepfake() bool {
	return r.Report.DeepfakeVideo != nil && r.Report.DeepfakeVideo.IsDetected
}

// AudioReport is the analysis report shared by the voice and music endpoints.
type AudioReport struct {
	Verdict    Verdict `json:"verdict"`
	Confidence float64 `json:"confidence"`
	Duration   int     `json:"duration"`
	TotalBytes int64   `json:"total_bytes"`
	MD5        string  `json:"md5"`
}

// VoiceReportResponse is the full response from the voice analysis endpoint.
type VoiceReportResponse struct {
	ID        string      `json:"id"`
	CreatedAt *time.Time  `json:"created_at,omitempty"`
	Report    AudioReport `json:"report"`
}

// Verdict returns the AI detection verdict.
func (r *VoiceReportResponse) Verdict() Verdict {
	return r.Report.Verdict
}

// Confidence returns the AI detection confidence.
func (r *VoiceReportResponse) Confidence() float64 {
	return r.Report.Confidence
}

// IsAI reports whether the voice was classified as AI-generated.
func (r *VoiceReportResponse) IsAI() bool {
	return r.Report.Verdict == VerdictAI
}

// MusicReportResponse is the full response from the music analysis endpoint.
type MusicReportResponse struct {
	ID        string      `json:"id"`
	CreatedAt *time.Time  `json:"created_at,omitempty"`
	Report    AudioReport `json:"report"`
}

// Verdict returns the AI detection verdict.
func (r *MusicReportResponse) Verdict() Verdict {
	return r.Report.Verdict
}

// Confidence returns the AI detection confidence.
func (r *MusicReportResponse) Confidence() float64 {
	return r.Report.Confidence
}

// IsAI reports whether the music was classified as AI-generated.
func (r *MusicReportResponse) IsAI() bool {
	return r.Report.Verdict == VerdictAI
}

// TextAnnotation is one block-level annotation: a span of the submitted text
// with the confidence that the span is AI-generated. The API encodes it as a
// two-element array.
type TextAnnotation struct {
	Text       string
	Confidence float64
}

// MarshalJSON encodes the annotation as ["text", confidence].
func (a TextAnnotation) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{a.Text, a.Confidence})
}

// UnmarshalJSON decodes the ["text", confidence] wire form.
func (a *TextAnnotation) UnmarshalJSON(data []byte) error {
	var raw [2]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("text annotation must be a two-element array: %w", err)
	}
	if err := json.Unmarshal(raw[0], &a.Text); err != nil {
		return err
	}
	return json.Unmarshal(raw[1], &a.Confidence)
}

// TextMetadata describes the analyzed text.
type TextMetadata struct {
	WordCount      int    `json:"word_count"`
	CharacterCount int    `json:"character_count"`
	TokenCount     int    `json:"token_count"`
	MD5            string `json:"md5"`
}

// AITextReport is the AI text detection report.
type AITextReport struct {
	IsDetected  bool             `json:"is_detected"`
	Confidence  float64          `json:"confidence"`
	Annotations []TextAnnotation `json:"annotations,omitempty"`
}

// TextReport wraps the text analysis facets.
type TextReport struct {
	AIText AITextReport `json:"ai_text"`
}

// TextReportResponse is the full response from the text analysis endpoint.
type TextReportResponse struct {
	ID         string       `json:"id"`
	CreatedAt  *time.Time   `json:"created_at,omitempty"`
	Report     TextReport   `json:"report"`
	Metadata   TextMetadata `json:"metadata"`
	ExternalID string       `json:"external_id,omitempty"`
}

// Verdict returns the AI detection verdict.
func (r *TextReportResponse) Verdict() Verdict {
	if r.Report.AIText.IsDetected {
		return VerdictAI
	}
	return VerdictHuman
}

// Confidence returns the AI detection confidence.
func (r *TextReportResponse) Confidence() float64 {
	return r.Report.AIText.Confidence
}

// IsAI reports whether the text was classified as AI-generated.
func (r *TextReportResponse) IsAI() bool {
	return r.Report.AIText.IsDetected
}

// Annotations returns block-level annotations, when requested.
func (r *TextReportResponse) Annotations() []TextAnnotation {
	return r.Report.AIText.Annotations
}

// CheckTokenResponse is the response from the token check endpoint.
type CheckTokenResponse struct {
	IsValid   bool   `json:"is_valid"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

// RefreshTokenResponse is the response from the token refresh endpoint. Token
// holds the newly issued API token.
type RefreshTokenResponse struct {
	Token string `json:"token"`
}

// RevokeTokenResponse is the response from the token revoke endpoint.
type RevokeTokenResponse struct {
	IsRevoked bool `json:"is_revoked"`
}

type liveResponse struct {
	IsLive bool `json:"is_live"`
}
