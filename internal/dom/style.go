package dom

import "strings"

// declaration is one "prop: value" entry of an inline style attribute.
// Order is preserved across edits so serialized markup stays stable.
type declaration struct {
	prop string
	val  string
}

func parseStyle(s string) []declaration {
	var decls []declaration
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		prop, val, found := strings.Cut(part, ":")
		if !found {
			continue
		}
		prop = strings.TrimSpace(prop)
		val = strings.TrimSpace(val)
		if prop == "" {
			continue
		}
		decls = append(decls, declaration{prop: prop, val: val})
	}
	return decls
}

func renderStyle(decls []declaration) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.prop+": "+d.val)
	}
	return strings.Join(parts, "; ")
}

// StyleProperty reads one property of the inline style attribute, returning
// "" when the property (or the attribute) is not set.
func (e *Element) StyleProperty(prop string) string {
	style := e.Attr("style")
	if !style.Present {
		return ""
	}
	for _, d := range parseStyle(style.Val) {
		if d.prop == prop {
			return d.val
		}
	}
	return ""
}

// SetStyleProperty writes one property of the inline style attribute,
// preserving the order of existing declarations. An empty value removes the
// property instead of writing "prop: ;".
func (e *Element) SetStyleProperty(prop, val string) {
	if val == "" {
		e.RemoveStyleProperty(prop)
		return
	}
	decls := parseStyle(e.Attr("style").Val)
	for i := range decls {
		if decls[i].prop == prop {
			decls[i].val = val
			e.SetAttr("style", Attr(renderStyle(decls)))
			return
		}
	}
	decls = append(decls, declaration{prop: prop, val: val})
	e.SetAttr("style", Attr(renderStyle(decls)))
}

// RemoveStyleProperty deletes one property, dropping the whole style
// attribute when it was the last declaration.
func (e *Element) RemoveStyleProperty(prop string) {
	style := e.Attr("style")
	if !style.Present {
		return
	}
	decls := parseStyle(style.Val)
	kept := decls[:0]
	for _, d := range decls {
		if d.prop != prop {
			kept = append(kept, d)
		}
	}
	if len(kept) == 0 {
		e.SetAttr("style", Absent)
		return
	}
	e.SetAttr("style", Attr(renderStyle(kept)))
}
