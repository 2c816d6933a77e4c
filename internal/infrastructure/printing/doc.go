// Package printing renders order slips: HTML through html/template, and PDF
// through a headless Chrome driven by chromedp.
package printing
