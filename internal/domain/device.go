package domain

// Device is one row of the ARCore supported-device list. The model name is
// what gets typed into the shop search; the model code keys cache and
// repository entries because model names are not unique across variants.
type Device struct {
	Manufacturer    string `json:"manufacturer"`
	ModelName       string `json:"model_name"`
	ModelCode       string `json:"model_code"`
	RAM             string `json:"ram,omitempty"`
	FormFactor      string `json:"form_factor,omitempty"`
	SoC             string `json:"soc,omitempty"`
	ScreenSizes     string `json:"screen_sizes,omitempty"`
	ScreenDensities string `json:"screen_densities,omitempty"`
	ABIs            string `json:"abis,omitempty"`
	SDKVersions     string `json:"android_sdk_versions,omitempty"`
	OpenGLVersions  string `json:"opengl_es_versions,omitempty"`
}

// Key returns the identifier used for cache and repository lookups.
func (d Device) Key() string {
	if d.ModelCode != "" {
		return d.ModelCode
	}
	return d.ModelName
}
