// Package i18n renders validation failures in the user's language.
//
// Catalogs are YAML documents keyed by language code with nested message
// keys underneath. Messages use named placeholders in the form %{name}.
// A bundled catalog covers every translation key produced by package shape:
//
//	en:
//	  validation:
//	    shape_mismatch: "expected %{expected}, got %{actual}"
//
// # Usage
//
//	catalog := i18n.Builtin()
//	custom, err := i18n.LoadFS(ctx, os.DirFS("./translations"), ".")
//	if err != nil {
//		log.Fatal(err)
//	}
//	catalog.Merge(custom)
//
//	translator, err := i18n.NewTranslator(catalog, i18n.WithDefaultLanguage("en"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	lang := translator.Match(r.Header.Get("Accept-Language"))
//	if _, err := user.Exact(input); err != nil {
//		msg := translator.Error(lang, err)
//		// msg == ".address.zip: expected String, got 42"
//	}
//
// Language negotiation uses golang.org/x/text/language, so regional variants
// such as "en-GB" resolve to "en" and full Accept-Language headers with
// quality values are understood.
package i18n
