package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedChar         Code = 1003
	LexUnterminatedBlockComment Code = 1004
	LexUnterminatedPragma       Code = 1005
	LexBadEscape                Code = 1006
	LexBadNumber                Code = 1007
	LexEmptyChar                Code = 1008

	// Раскладка (offside rule)
	LayInfo            Code = 2000
	LayUnbalancedBrace Code = 2001
	LayUnclosedBrace   Code = 2002
	LayForcedClose     Code = 2003

	// Парсерные
	SynInfo               Code = 3000
	SynUnexpectedToken    Code = 3001
	SynUnexpectedTopLevel Code = 3002
	SynExpectIdentifier   Code = 3003
	SynExpectConstructor  Code = 3004
	SynExpectModuleName   Code = 3005
	SynExpectType         Code = 3006
	SynExpectExpression   Code = 3007
	SynExpectEquals       Code = 3008
	SynExpectDoubleColon  Code = 3009
	SynExpectArrow        Code = 3010
	SynExpectBlock        Code = 3011
	SynUnclosedParen      Code = 3012
	SynUnclosedBracket    Code = 3013
	SynUnclosedBrace      Code = 3014
	SynUnclosedPragma     Code = 3015
	SynExpectThen         Code = 3016
	SynExpectElse         Code = 3017
	SynExpectOf           Code = 3018
	SynExpectIn           Code = 3019
	SynImportAfterDecl    Code = 3020
	SynBadPragma          Code = 3021
	SynUnknownPragma      Code = 3022
	SynMisplacedPragma    Code = 3023
	SynExtensionDisabled  Code = 3024
	SynBadFixity          Code = 3025
	SynBadForeign         Code = 3026
	SynTooManyErrors      Code = 3027

	// Фиксити
	FixInfo          Code = 4000
	FixDefaulted     Code = 4001
	FixConflict      Code = 4002
	FixNonAssocChain Code = 4003
	FixDuplicate     Code = 4004
	FixBadPrecedence Code = 4005

	// I/O
	IOLoadFileError Code = 5001
	IOCacheError    Code = 5002
	IOIndexError    Code = 5003

	// Проект
	PrjBadConfig       Code = 6001
	PrjUnknownOption   Code = 6002
	PrjDuplicateModule Code = 6003
	PrjSelfImport      Code = 6004
	PrjImportCycle     Code = 6005
	PrjNameMismatch    Code = 6006
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedChar:         "Unterminated character literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexUnterminatedPragma:       "Unterminated pragma",
	LexBadEscape:                "Invalid escape sequence",
	LexBadNumber:                "Malformed numeric literal",
	LexEmptyChar:                "Empty character literal",
	LayInfo:                     "Layout information",
	LayUnbalancedBrace:          "Closing brace without matching open brace",
	LayUnclosedBrace:            "Explicit brace left open at end of input",
	LayForcedClose:              "Implicit block closed by explicit brace",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnexpectedTopLevel:       "Unexpected token at top level",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectConstructor:        "Expected constructor or type name",
	SynExpectModuleName:         "Expected module name",
	SynExpectType:               "Expected type",
	SynExpectExpression:         "Expected expression",
	SynExpectEquals:             "Expected '='",
	SynExpectDoubleColon:        "Expected '::'",
	SynExpectArrow:              "Expected '->'",
	SynExpectBlock:              "Expected block",
	SynUnclosedParen:            "Unclosed parenthesis",
	SynUnclosedBracket:          "Unclosed bracket",
	SynUnclosedBrace:            "Unclosed brace",
	SynUnclosedPragma:           "Pragma without '#-}'",
	SynExpectThen:               "Expected 'then'",
	SynExpectElse:               "Expected 'else'",
	SynExpectOf:                 "Expected 'of'",
	SynExpectIn:                 "Expected 'in'",
	SynImportAfterDecl:          "Import after declarations",
	SynBadPragma:                "Malformed pragma",
	SynUnknownPragma:            "Unknown pragma",
	SynMisplacedPragma:          "Pragma not allowed here",
	SynExtensionDisabled:        "Syntax requires a language extension",
	SynBadFixity:                "Malformed fixity declaration",
	SynBadForeign:               "Malformed foreign declaration",
	SynTooManyErrors:            "Too many errors",
	FixInfo:                     "Fixity information",
	FixDefaulted:                "Operator without fixity declaration",
	FixConflict:                 "Precedence parsing conflict",
	FixNonAssocChain:            "Non-associative operators chained",
	FixDuplicate:                "Duplicate fixity declaration",
	FixBadPrecedence:            "Precedence out of range",
	IOLoadFileError:             "I/O load file error",
	IOCacheError:                "Parse cache error",
	IOIndexError:                "Declaration index error",
	PrjBadConfig:                "Invalid hsfront.toml",
	PrjUnknownOption:            "Unknown option in hsfront.toml",
	PrjDuplicateModule:          "Module defined by more than one file",
	PrjSelfImport:               "Module imports itself",
	PrjImportCycle:              "Import cycle",
	PrjNameMismatch:             "Module name does not match file path",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("LAY%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("FIX%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// Class is the coarse problem category of a diagnostic.
type Class uint8

const (
	ClassOther Class = iota
	ClassLex
	ClassLayout
	ClassParse
	ClassFixity
)

func (c Class) String() string {
	switch c {
	case ClassLex:
		return "LexError"
	case ClassLayout:
		return "LayoutError"
	case ClassParse:
		return "ParseError"
	case ClassFixity:
		return "FixityConflict"
	}
	return "Other"
}

// Class maps the code range onto its problem class.
func (c Code) Class() Class {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return ClassLex
	case ic >= 2000 && ic < 3000:
		return ClassLayout
	case ic >= 3000 && ic < 4000:
		return ClassParse
	case ic >= 4000 && ic < 5000:
		return ClassFixity
	}
	return ClassOther
}
