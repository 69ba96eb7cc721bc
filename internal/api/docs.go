package api

// Docs is the static endpoint map served at /docs.
type Docs struct {
	APIVersion     string                       `json:"api_version"`
	BaseURL        string                       `json:"base_url"`
	Endpoints      map[string]map[string]string `json:"endpoints"`
	DataFormat     string                       `json:"data_format"`
	Authentication string                       `json:"authentication"`
	CORS           string                       `json:"cors"`
}

var documented = []struct {
	plural, singular string
	details          string
}{
	{"contacts", "contact", ""},
	{"wires", "wire", ""},
	{"processes", "process", ""},
	{"recipes", "recipe", " with full details"},
	{"jobs", "job", ""},
	{"setups", "setup", ""},
	{"commands", "command", ""},
}

// NewDocs builds the endpoint map for the given base path.
func NewDocs(basePath string) Docs {
	endpoints := make(map[string]map[string]string, len(documented)+1)
	for _, r := range documented {
		coll := basePath + "/" + r.plural
		item := coll + "/{id}"
		endpoints[r.plural] = map[string]string{
			"GET " + coll:    "Get all " + r.plural + r.details,
			"GET " + item:    "Get " + r.singular + " by ID" + r.details,
			"POST " + coll:   "Create new " + r.singular,
			"PUT " + item:    "Update " + r.singular,
			"DELETE " + item: "Delete " + r.singular,
		}
	}
	endpoints["device"] = map[string]string{
		"POST " + basePath + "/device/commands": "Execute device commands (start_recipe, reset)",
	}

	return Docs{
		APIVersion:     "v1",
		BaseURL:        basePath,
		Endpoints:      endpoints,
		DataFormat:     "JSON",
		Authentication: "None (for demonstration)",
		CORS:           "Enabled for all origins",
	}
}
