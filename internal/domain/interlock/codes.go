package interlock

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed codes.yaml
var defaultCodeTable []byte

// CodeDefinition - запись таблицы кодов ошибок.
type CodeDefinition struct {
	Code        string `yaml:"code"`
	Message     string `yaml:"message"`
	AutoUnraise bool   `yaml:"autoUnraise,omitempty"`
}

// CodeTable - статическая таблица код -> сообщение по контроллерам.
type CodeTable struct {
	Robot    []CodeDefinition `yaml:"robot"`
	Security []CodeDefinition `yaml:"security"`
	Alarm    []CodeDefinition `yaml:"alarm"`
}

// Definitions возвращает записи контроллера domain.
func (t *CodeTable) Definitions(domain Domain) []CodeDefinition {
	switch domain {
	case DomainRobot:
		return t.Robot
	case DomainSecurity:
		return t.Security
	case DomainAlarm:
		return t.Alarm
	}
	return nil
}

// DefaultCodeTable возвращает встроенную таблицу кодов.
func DefaultCodeTable() (*CodeTable, error) {
	return ParseCodeTable(defaultCodeTable)
}

// LoadCodeTable читает таблицу из YAML-файла. Пустой путь - встроенная таблица.
func LoadCodeTable(path string) (*CodeTable, error) {
	if path == "" {
		return DefaultCodeTable()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read error table: %w", err)
	}
	return ParseCodeTable(data)
}

func ParseCodeTable(data []byte) (*CodeTable, error) {
	var t CodeTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse error table: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate проверяет префиксы и уникальность кодов.
func (t *CodeTable) Validate() error {
	seen := make(map[string]bool)
	for _, domain := range Domains {
		for _, def := range t.Definitions(domain) {
			if def.Code == "" {
				return fmt.Errorf("empty code in %s table", domain)
			}
			d, err := DomainOf(def.Code)
			if err != nil {
				return err
			}
			if d != domain {
				return fmt.Errorf("code %s listed under %s", def.Code, domain)
			}
			if seen[def.Code] {
				return fmt.Errorf("duplicate error code %s", def.Code)
			}
			seen[def.Code] = true
		}
	}
	return nil
}
