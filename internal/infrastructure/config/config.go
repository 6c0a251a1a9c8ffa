package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every environment variable name.
const Prefix = "CELERIS"

// Template describes where the starter template comes from and how it is laid out.
type Template struct {
	// ArchiveURL points at the default branch archive, so every run gets the latest template.
	ArchiveURL      string `envconfig:"ARCHIVE_URL" default:"https://github.com/Alazar42/CelerisStarterProject/archive/refs/heads/main.zip"`
	ArchiveFileName string `envconfig:"ARCHIVE_FILE" default:"CelerisStarterProject.zip"`
	TemplateFolder  string `envconfig:"TEMPLATE_FOLDER" default:"CelerisStarterProject-main"`
	ExtractDir      string `envconfig:"EXTRACT_DIR" default:"temp_extracted"`
	Placeholder     string `envconfig:"PLACEHOLDER" default:"Celeris"`
	BuildFile       string `envconfig:"BUILD_FILE" default:"CMakeLists.txt"`
	// ExpectedArchiveBytes only scales the progress bar.
	ExpectedArchiveBytes int64 `envconfig:"EXPECTED_ARCHIVE_BYTES" default:"27923742"`
}

// Network holds probe and download timeouts.
type Network struct {
	ProbeURL              string        `envconfig:"PROBE_URL" default:"http://www.google.com"`
	ProbeTimeout          time.Duration `envconfig:"PROBE_TIMEOUT" default:"3s"`
	ConnectTimeout        time.Duration `envconfig:"CONNECT_TIMEOUT" default:"10s"`
	ResponseHeaderTimeout time.Duration `envconfig:"RESPONSE_HEADER_TIMEOUT" default:"30s"`
}

// Git holds the identity used for the initial commit of --git projects.
type Git struct {
	AuthorName  string `envconfig:"AUTHOR_NAME" default:"Celeris Project Starter"`
	AuthorEmail string `envconfig:"AUTHOR_EMAIL" default:"starter@celeris.local"`
}

// Otel holds OTEL exporter configuration.
type Otel struct {
	Enabled  bool   `envconfig:"ENABLED" default:"false"`
	Endpoint string `envconfig:"ENDPOINT"`
	Insecure bool   `envconfig:"INSECURE" default:"false"`
}

// Starter holds the full configuration of the celeris CLI.
type Starter struct {
	Template Template
	Network  Network
	Git      Git
	Otel     Otel
}

// Load loads the starter configuration from CELERIS_* environment variables.
func Load() (*Starter, error) {
	var cfg Starter
	if err := envconfig.Process(Prefix, &cfg.Template); err != nil {
		return nil, err
	}
	if err := envconfig.Process(Prefix, &cfg.Network); err != nil {
		return nil, err
	}
	if err := envconfig.Process(Prefix+"_GIT", &cfg.Git); err != nil {
		return nil, err
	}
	if err := envconfig.Process(Prefix+"_OTEL", &cfg.Otel); err != nil {
		return nil, err
	}
	return &cfg, nil
}
