package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ParseCSS parses a stylesheet whose rules use .class or #id selectors. Comma
// separated selector lists become one rule per selector. Other selectors and
// at-rules are skipped.
func ParseCSS(content string) (*Stylesheet, error) {
	sheet := &Stylesheet{}
	p := css.NewParser(parse.NewInputString(content), false)

	var selectors []string
	var props map[string]string
	atDepth := 0
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != io.EOF {
				return sheet, fmt.Errorf("parse css: %w", err)
			}
			return sheet, nil
		case css.BeginAtRuleGrammar:
			atDepth++
		case css.EndAtRuleGrammar:
			atDepth--
		case css.BeginRulesetGrammar:
			if atDepth > 0 {
				selectors, props = nil, nil
				continue
			}
			sel := strings.ReplaceAll(string(data)+joinTokens(p.Values()), "{", "")
			selectors = splitSelectors(sel)
			props = make(map[string]string)
		case css.DeclarationGrammar:
			if props == nil {
				continue
			}
			props[strings.ToLower(string(data))] = strings.TrimSpace(joinTokens(p.Values()))
		case css.EndRulesetGrammar:
			for _, sel := range selectors {
				sheet.Rules = append(sheet.Rules, Rule{Selector: sel, Props: props})
			}
			selectors, props = nil, nil
		}
	}
}

func joinTokens(tokens []css.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.Write(t.Data)
	}
	return b.String()
}

func splitSelectors(s string) []string {
	var out []string
	for _, sel := range strings.Split(s, ",") {
		sel = strings.TrimSpace(sel)
		if len(sel) < 2 || (sel[0] != '.' && sel[0] != '#') || strings.ContainsAny(sel, " >+~:[") {
			continue
		}
		out = append(out, sel)
	}
	return out
}
