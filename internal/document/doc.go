// Package document is the host-side owner of one open text for the code
// intelligence engine.
//
// The analyzers in package intel are stateless. A Document supplies the
// state they leave to the host: the current text and its version, the
// resolved language, the fold flags that survive re-detection, and an
// optional live highlight session fed on every change.
//
// # Usage
//
//	eng := intel.New()
//	defer eng.Close()
//
//	doc, err := document.Open(eng, "main.swift",
//		document.WithHighlighter(func(r highlight.Result) { render(r.Spans) }))
//	if err != nil {
//		return err
//	}
//	defer doc.Close()
//
//	for _, r := range doc.Folds() {
//		fmt.Println(r.StartLine, r.EndLine, r.Kind, r.Folded)
//	}
//	doc.ToggleFold(fold.Key{StartLine: 1, Kind: language.KindFunction})
//
// # Thread Safety
//
// All Document methods are safe for concurrent use. Highlight results are
// delivered on the session's goroutine and may call back into the Document.
package document
