package ast

import "github.com/krew-solutions/ascetic-ast-go/asceticast/asjson"

// ParseInfoKey is the reserved field holding parse position metadata.
const ParseInfoKey = "parseinfo"

// ParseInfo locates the text a rule matched. Positions are byte offsets into
// the input, lines are zero-based.
type ParseInfo struct {
	Rule    string
	Pos     int
	EndPos  int
	Line    int
	EndLine int
}

func (p ParseInfo) AsJSON() any {
	obj := asjson.NewObject()
	obj.Set("rule", p.Rule)
	obj.Set("pos", p.Pos)
	obj.Set("endpos", p.EndPos)
	obj.Set("line", p.Line)
	obj.Set("endline", p.EndLine)
	return obj
}
