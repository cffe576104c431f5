package parser

import (
	"strings"

	"hsfront/internal/diag"
	"hsfront/internal/token"
)

// Extensions that gate syntax.
const (
	extBangPatterns              = "BangPatterns"
	extBlockArguments            = "BlockArguments"
	extDefaultSignatures         = "DefaultSignatures"
	extDerivingStrategies        = "DerivingStrategies"
	extDerivingVia               = "DerivingVia"
	extExistentialQuantification = "ExistentialQuantification"
	extExplicitForAll            = "ExplicitForAll"
	extForeignFunctionInterface  = "ForeignFunctionInterface"
	extFunctionalDependencies    = "FunctionalDependencies"
	extGADTSyntax                = "GADTSyntax"
	extLambdaCase                = "LambdaCase"
	extMultiWayIf                = "MultiWayIf"
	extRecordWildCards           = "RecordWildCards"
	extStandaloneDeriving        = "StandaloneDeriving"
	extTupleSections             = "TupleSections"
	extTypeApplications          = "TypeApplications"
	extTypeFamilies              = "TypeFamilies"
)

// implied lists what switching on an extension switches on as well.
var implied = map[string][]string{
	"GADTs":                      {extGADTSyntax, extExistentialQuantification, extExplicitForAll},
	"RankNTypes":                 {extExplicitForAll},
	"ScopedTypeVariables":        {extExplicitForAll},
	"LiberalTypeSynonyms":        {extExplicitForAll},
	extExistentialQuantification: {extExplicitForAll},
	extDerivingVia:               {extDerivingStrategies},
	"TypeFamilyDependencies":     {extTypeFamilies},
	"Haskell2010":                {extForeignFunctionInterface},
	"Haskell98":                  {},
	"GHC2021": {
		extBangPatterns, extExistentialQuantification, extExplicitForAll,
		extGADTSyntax, extStandaloneDeriving, extTupleSections, extTypeApplications,
		extForeignFunctionInterface,
	},
	"GHC2024": {
		extBangPatterns, extExistentialQuantification, extExplicitForAll,
		extGADTSyntax, extStandaloneDeriving, extTupleSections, extTypeApplications,
		extForeignFunctionInterface, extLambdaCase, extDerivingStrategies,
	},
}

// collectExtensions builds the enabled set from the configured list and
// every LANGUAGE pragma of the file. A nil list turns gating off.
func collectExtensions(raw []token.Token, list []string) map[string]bool {
	if list == nil {
		return nil
	}
	on := make(map[string]bool, len(list))
	for _, name := range list {
		enableExtension(on, name)
	}
	for i := 0; i < len(raw); i++ {
		if raw[i].Kind != token.PragmaName || !strings.EqualFold(raw[i].Text, "LANGUAGE") {
			continue
		}
		for j := i + 1; j < len(raw) && raw[j].Kind != token.PragmaClose; j++ {
			if raw[j].Kind == token.ConId {
				enableExtension(on, raw[j].Text)
			}
		}
	}
	return on
}

func enableExtension(on map[string]bool, name string) {
	if rest, ok := strings.CutPrefix(name, "No"); ok && rest != "" && rest[0] >= 'A' && rest[0] <= 'Z' {
		delete(on, rest)
		return
	}
	on[name] = true
	for _, sub := range implied[name] {
		enableExtension(on, sub)
	}
}

// requireExt warns once per extension when a gated form is used without it.
func (p *Parser) requireExt(ext, what string) {
	if p.exts == nil || p.exts[ext] || p.warned[ext] {
		return
	}
	p.warned[ext] = true
	p.warn(diag.SynExtensionDisabled, what+" requires the "+ext+" extension")
}
