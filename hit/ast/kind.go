package ast

// Kind identifies which tagged-sum variant a Node is.
type Kind int

const (
	KindRoot Kind = iota
	KindSection
	KindField
	KindComment
	KindBlank
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "Root"
	case KindSection:
		return "Section"
	case KindField:
		return "Field"
	case KindComment:
		return "Comment"
	case KindBlank:
		return "Blank"
	default:
		return "Unknown"
	}
}

// ValueKind identifies the semantic type of a Field's value.
type ValueKind int

const (
	ValueNone ValueKind = iota
	ValueBool
	ValueInt
	ValueFloat
	ValueString
)

func (k ValueKind) String() string {
	switch k {
	case ValueNone:
		return "None"
	case ValueBool:
		return "Bool"
	case ValueInt:
		return "Int"
	case ValueFloat:
		return "Float"
	case ValueString:
		return "String"
	default:
		return "Unknown"
	}
}
