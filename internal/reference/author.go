package reference

// Author is one entry of a publication's author list as returned by the
// publication-metadata service.
type Author struct {
	Name      string `json:"name"`
	AuthType  string `json:"authtype,omitempty"`
	ClusterID string `json:"clusterid,omitempty"`
}
