package utils

import (
	"os"
	"path/filepath"
	"strings"
)

func GetFilename(filePath string) string {
	base := filepath.Base(filePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// OutputPath returns the directory that holds a model's files, creating it when makeDir is set.
func OutputPath(makeDir bool, outputDir, modelName string) (string, error) {
	if makeDir {
		dir := filepath.Join(outputDir, modelName)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return "", err
		}
		return dir, nil
	}
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0750); err != nil {
			return "", err
		}
	}
	return outputDir, nil
}

func OpenFile(makeDir bool, outputPath string, fileSuffix, modelName string) (*os.File, error) {
	if makeDir && fileSuffix != "" && fileSuffix != "." {
		if err := os.MkdirAll(filepath.Join(outputPath, fileSuffix), 0750); err != nil {
			return nil, err
		}
		return os.Create(filepath.Join(outputPath, fileSuffix, modelName+".csv"))
	} else {
		return os.Create(filepath.Join(outputPath, modelName+"_"+fileSuffix+".csv"))
	}
}
