package reportstorage

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileReportStorage writes report artifacts as <OutputDir>/<ArtifactPrefix>_<name>.
type FileReportStorage struct {
	ArtifactPrefix string
	OutputDir      string
}

func CreateFileReportStorage(artifactPrefix, outputDir string) (FileReportStorage, error) {
	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return FileReportStorage{}, fmt.Errorf("failed to create output directory '%s': %w", outputDir, err)
	}
	return FileReportStorage{
		ArtifactPrefix: artifactPrefix,
		OutputDir:      outputDir,
	}, nil
}

// Path returns the location an artifact with the given name is written to.
func (s FileReportStorage) Path(name string) string {
	outputDir := s.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	if s.ArtifactPrefix == "" {
		return filepath.Join(outputDir, name)
	}
	return filepath.Join(outputDir, fmt.Sprintf("%s_%s", s.ArtifactPrefix, name))
}

func (s FileReportStorage) Store(name string, data []byte) (string, error) {
	outputFilePath := s.Path(name)
	outputFile, err := os.Create(outputFilePath)
	if err != nil {
		return "", fmt.Errorf("failed to create output file '%s': %w", outputFilePath, err)
	}
	defer outputFile.Close()

	if _, err := outputFile.Write(data); err != nil {
		return "", fmt.Errorf("failed to write to output file '%s': %w", outputFilePath, err)
	}

	return outputFilePath, nil
}
