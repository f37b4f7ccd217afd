// Package markdown discovers tutorial documents on disk, parses their front
// matter, and renders Markdown bodies into HTML.
package markdown
