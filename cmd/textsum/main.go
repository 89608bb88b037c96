// Command textsum summarizes text from the terminal and can serve the
// summarization form over HTTP.
//
// Usage:
//
//	textsum summarize "some long text..."
//	cat article.txt | textsum summarize --format markdown
//	textsum serve --addr :8080
//
// See --help for all available options.
package main

func main() {
	Execute()
}
