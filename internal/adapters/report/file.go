package report

// file.go — publicación de artefactos a disco.
//
// Cada run escribe:
//   - pl5_analysis_output_<timestamp>.txt  (informe del run)
//   - latest_pl5_analysis.txt              (alias estable, misma bytes)
//   - latest_pl5_calculation.txt           (evaluaciones de premios, acotado)
//
// El archivo de cálculo conserva como máximo las 10 evaluaciones y los 20
// logs de error más recientes, nuevos primero, con secciones separadas por
// una regla de 80 '='. La retención de los informes con timestamp es un
// housekeeping externo — aquí solo se escriben.

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alejandrodnm/pl5bot/internal/ports"
)

const (
	analysisPattern = "pl5_analysis_output_%s.txt"
	analysisAlias   = "latest_pl5_analysis.txt"
	calculationFile = "latest_pl5_calculation.txt"

	timestampLayout = "20060102_150405"

	maxNormalRecords = 10
	maxErrorLogs     = 20
)

var sectionRule = "\n" + strings.Repeat("=", 80) + "\n"

// FilePublisher implementa ports.Publisher escribiendo en un directorio.
type FilePublisher struct {
	dir string
}

// NewFilePublisher crea un publisher sobre el directorio dado (se crea si
// no existe).
func NewFilePublisher(dir string) (*FilePublisher, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("report.NewFilePublisher: mkdir %q: %w", dir, err)
	}
	return &FilePublisher{dir: dir}, nil
}

// Publish escribe los tres artefactos. Cualquier fallo es fatal para el run:
// los escritos previos quedan consistentes porque cada archivo se reemplaza
// de forma atómica.
func (p *FilePublisher) Publish(_ context.Context, r ports.RunReport) error {
	analysis := RenderAnalysis(r)

	stamped := fmt.Sprintf(analysisPattern, r.GeneratedAt.Format(timestampLayout))
	if err := atomicWrite(filepath.Join(p.dir, stamped), analysis); err != nil {
		return fmt.Errorf("report.Publish: %w", err)
	}
	if err := atomicWrite(filepath.Join(p.dir, analysisAlias), analysis); err != nil {
		return fmt.Errorf("report.Publish: %w", err)
	}

	if len(r.Prizes) > 0 {
		entries := make([]string, 0, len(r.Prizes))
		for _, summary := range r.Prizes {
			entries = append(entries, RenderCalculationEntry(r, summary))
		}
		if err := p.appendCalculation(entries); err != nil {
			return fmt.Errorf("report.Publish: %w", err)
		}
	}
	return nil
}

// appendCalculation antepone las entradas nuevas al archivo de cálculo,
// respetando los topes de registros normales y de error.
func (p *FilePublisher) appendCalculation(entries []string) error {
	path := filepath.Join(p.dir, calculationFile)

	existing := ""
	if data, err := os.ReadFile(path); err == nil {
		existing = string(data)
	}

	normal, errLogs := splitSections(existing)
	normal = append(entries, normal...)

	if len(normal) > maxNormalRecords {
		normal = normal[:maxNormalRecords]
	}
	if len(errLogs) > maxErrorLogs {
		errLogs = errLogs[:maxErrorLogs]
	}

	parts := make([]string, 0, len(normal)+len(errLogs)+1)
	parts = append(parts, normal...)
	if len(errLogs) > 0 {
		parts = append(parts, "错误日志:")
		parts = append(parts, errLogs...)
	}

	return atomicWrite(path, strings.Join(parts, sectionRule))
}

// splitSections separa el contenido previo en registros de evaluación y
// logs de error (el colaborador legacy de adquisición escribe los segundos).
func splitSections(content string) (normal, errLogs []string) {
	for _, section := range strings.Split(content, sectionRule) {
		trimmed := strings.TrimSpace(section)
		switch {
		case trimmed == "" || trimmed == "错误日志:":
			continue
		case strings.Contains(trimmed, "错误时间:") || strings.Contains(trimmed, "ERROR"):
			errLogs = append(errLogs, section)
		case strings.Contains(trimmed, "评估时间:"):
			normal = append(normal, section)
		}
	}
	return normal, errLogs
}

// atomicWrite reemplaza el archivo vía write-temp-then-rename.
func atomicWrite(path, content string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".report-*")
	if err != nil {
		return fmt.Errorf("atomic write %q: create temp: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("atomic write %q: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("atomic write %q: close: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("atomic write %q: rename: %w", path, err)
	}
	return nil
}
