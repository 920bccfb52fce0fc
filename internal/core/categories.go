package core

import (
	"encoding/json"
	"fmt"
	"time"
)

// CategoryConfig is the canonical grouped shape of the household's category
// taxonomy, plus the per-month cache of saved weekly windows.
type CategoryConfig struct {
	Expense    map[string][]string        `json:"expense"`
	Income     map[string][]string        `json:"income"`
	Investment map[string][]string        `json:"investment"`
	SavedWeeks map[string][]WeeklyWindow  `json:"savedWeeks,omitempty"`
}

// DefaultCategories returns the built-in grouped taxonomy.
func DefaultCategories() CategoryConfig {
	return CategoryConfig{
		Expense: map[string][]string{
			"ESSENCIAL":      {"Casa", "Mercado", "Energia", "Água", "Internet", "Transporte", "Saúde"},
			"ESTILO DE VIDA": {"Lazer", "Restaurantes", "Compras", "Assinaturas"},
		},
		Income: map[string][]string{
			"PRINCIPAL": {"Salário", "Pró-labore"},
			"EXTRAS":    {"Freelance", "Vendas", "Outros"},
			"PASSIVA":   {"Dividendos", "Aluguéis"},
		},
		Investment: map[string][]string{
			"RENDA FIXA":     {"CDB", "Tesouro Direto", "LCI/LCA", "Poupança"},
			"RENDA VARIÁVEL": {"Ações", "FIIs", "ETFs"},
			"CRIPTO & OUTROS": {"Bitcoin", "Ethereum", "Ouro"},
		},
	}
}

// MigrateCategoryConfig normalizes a stored config blob into the canonical
// grouped shape. Legacy shapes are converted section by section:
//
//   - investment {fixed: [...], variable: [...]} becomes
//     {"RENDA FIXA": fixed, "RENDA VARIÁVEL": variable}
//   - income as a flat array becomes {"GERAL": array}
//
// Sections absent from the blob fall back to defaults. The merge is shallow:
// a stored expense map fully replaces the default one rather than merging
// group by group. Unrecognized or malformed blobs yield the defaults.
func MigrateCategoryConfig(raw []byte) CategoryConfig {
	defaults := DefaultCategories()
	if len(raw) == 0 {
		return defaults
	}

	var loose map[string]json.RawMessage
	if err := json.Unmarshal(raw, &loose); err != nil {
		return defaults
	}

	out := defaults

	if v, ok := loose["expense"]; ok {
		if parsed, err := parseGroups(v); err == nil {
			out.Expense = parsed
		}
	}

	out.Income = migrateIncome(loose["income"], defaults.Income)
	out.Investment = migrateInvestment(loose["investment"], defaults.Investment)

	if v, ok := loose["savedWeeks"]; ok {
		var weeks map[string][]WeeklyWindow
		if err := json.Unmarshal(v, &weeks); err == nil {
			out.SavedWeeks = weeks
		}
	}

	return out
}

func migrateIncome(raw json.RawMessage, fallback map[string][]string) map[string][]string {
	if len(raw) == 0 {
		return fallback
	}
	// Legacy flat list
	var flat []string
	if err := json.Unmarshal(raw, &flat); err == nil {
		return map[string][]string{"GERAL": flat}
	}
	if parsed, err := parseGroups(raw); err == nil {
		return parsed
	}
	return fallback
}

func migrateInvestment(raw json.RawMessage, fallback map[string][]string) map[string][]string {
	if len(raw) == 0 {
		return fallback
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return fallback
	}

	// Legacy fixed/variable shape; other legacy fields (old targets) drop.
	if fixedRaw, ok := probe["fixed"]; ok {
		var fixed []string
		if err := json.Unmarshal(fixedRaw, &fixed); err == nil {
			variable := []string{}
			if varRaw, ok := probe["variable"]; ok {
				_ = json.Unmarshal(varRaw, &variable)
			}
			return map[string][]string{
				"RENDA FIXA":     fixed,
				"RENDA VARIÁVEL": variable,
			}
		}
	}

	if parsed, err := parseGroups(raw); err == nil {
		return parsed
	}
	return fallback
}

func parseGroups(raw json.RawMessage) (map[string][]string, error) {
	var groups map[string][]string
	if err := json.Unmarshal(raw, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// SavedWeeksKey is the cache key for a month's weekly windows. The month
// index is stored 0-based; persisted configs predate the current month
// convention and the key format must stay stable.
func SavedWeeksKey(year int, month time.Month) string {
	return fmt.Sprintf("%d-%d", year, int(month)-1)
}
