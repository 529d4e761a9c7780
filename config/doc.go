// Package config loads the declarative, section-based patch description
// into an ordered, fully-typed Plan. Category index sections reference
// per-file sections, which reference entry sections; everything is resolved
// here, once, so apply time never looks a section up by name.
//
// Category index sections, in the global apply order:
//
//	[TLKList]      StrRef{n}={section} | Replace{k}={section}
//	[InstallList]  File{k}={section}
//	[2DAList]      Table{k}={file}
//	[GFFList]      File{k}={file}
//	[CompileList]  File{k}={file}
//	[HACKList]     File{k}={file}
//	[SSFList]      File{k}={file}
//
// Table entry sections use ChangeRow{k}=/AddRow{k}=/CopyRow{k}=/
// AddColumn{k}= keys on the file section; tree entry sections use
// AddField{k}=/ModifyField{k}=/AddStruct{k}=/CopyToken{k}=. All resolver
// syntax (2DAMEMORY{n}, StrRef{n}, RowIndex, RowLabel, High(), I{n},
// L{label}, ****, <#LF#>, <#CR#>, ExclusiveColumn=) is recognized here.
// Any entry section may carry Condition= with an expression over token(n),
// strref(n) and defined(n).
package config
