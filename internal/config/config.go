package config

type Config struct {
	FolderPath string `json:"folderPath"`
	Theme      string `json:"theme,omitempty"`
	Workers    int    `json:"workers,omitempty"`
	SkipHidden bool   `json:"skipHidden,omitempty"`
}

type fileConfig struct {
	FolderPath *string `json:"folderPath,omitempty"`
	Theme      *string `json:"theme,omitempty"`
	Workers    *int    `json:"workers,omitempty"`
	SkipHidden *bool   `json:"skipHidden,omitempty"`
}
