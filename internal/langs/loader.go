package langs

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	tree_sitter_c "github.com/tree-sitter/tree-sitter-c/bindings/go"
	tree_sitter_csharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_kotlin "github.com/tree-sitter-grammars/tree-sitter-kotlin/bindings/go"
	tree_sitter_php "github.com/tree-sitter/tree-sitter-php/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_ruby "github.com/tree-sitter-grammars/tree-sitter-ruby/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_swift "github.com/alex-pinkus/tree-sitter-swift/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

func loadPython() (*tree_sitter.Language, error) {
	return tree_sitter.NewLanguage(tree_sitter_python.Language()), nil
}

func loadGo() (*tree_sitter.Language, error) {
	return tree_sitter.NewLanguage(tree_sitter_go.Language()), nil
}

func loadJavaScript() (*tree_sitter.Language, error) {
	return tree_sitter.NewLanguage(tree_sitter_javascript.Language()), nil
}

func loadTypeScript() (*tree_sitter.Language, error) {
	return tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()), nil
}

func loadTSX() (*tree_sitter.Language, error) {
	return tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTSX()), nil
}

func loadJava() (*tree_sitter.Language, error) {
	return tree_sitter.NewLanguage(tree_sitter_java.Language()), nil
}

func loadKotlin() (*tree_sitter.Language, error) {
	return tree_sitter.NewLanguage(tree_sitter_kotlin.Language()), nil
}

func loadCSharp() (*tree_sitter.Language, error) {
	return tree_sitter.NewLanguage(tree_sitter_csharp.Language()), nil
}

func loadRust() (*tree_sitter.Language, error) {
	return tree_sitter.NewLanguage(tree_sitter_rust.Language()), nil
}

func loadSwift() (*tree_sitter.Language, error) {
	return tree_sitter.NewLanguage(tree_sitter_swift.Language()), nil
}

func loadRuby() (*tree_sitter.Language, error) {
	return tree_sitter.NewLanguage(tree_sitter_ruby.Language()), nil
}

func loadPHP() (*tree_sitter.Language, error) {
	return tree_sitter.NewLanguage(tree_sitter_php.LanguagePHP()), nil
}

func loadC() (*tree_sitter.Language, error) {
	return tree_sitter.NewLanguage(tree_sitter_c.Language()), nil
}

func loadCpp() (*tree_sitter.Language, error) {
	return tree_sitter.NewLanguage(tree_sitter_cpp.Language()), nil
}
