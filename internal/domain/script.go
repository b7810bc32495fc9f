package domain

// ScenePrompt holds the derived production-manifest document for a
// scene, serialized to the canonical textual form.
type ScenePrompt struct {
	ImagePrompt string `json:"imagePrompt"`
}

// SceneDraft is one unit of a storyboard. The UI mutates its text
// fields in place; media regeneration replaces derived fields only.
type SceneDraft struct {
	ID         string      `json:"id"`
	Visual     string      `json:"visual"`
	VisualEN   string      `json:"visual_en"`
	Action     string      `json:"action"`
	ActionEN   string      `json:"action_en"`
	Camera     string      `json:"camera"`
	CameraEN   string      `json:"camera_en"`
	Dialogue   string      `json:"dialogue"`
	DialogueCN string      `json:"dialogue_cn"`
	Prompt     ScenePrompt `json:"prompt"`
}

// AnalysisResult is the full product analysis plus storyboard returned
// by script generation. AssignedVoice is chosen locally, not by the
// model.
type AnalysisResult struct {
	ProductType    string       `json:"productType"`
	SellingPoints  string       `json:"sellingPoints"`
	TargetAudience string       `json:"targetAudience"`
	Hook           string       `json:"hook"`
	PainPoints     string       `json:"painPoints"`
	Strategy       string       `json:"strategy"`
	AssignedVoice  string       `json:"assignedVoice"`
	Scenes         []SceneDraft `json:"scenes"`
}
