// Package templates discovers submodule templates on disk. The template root
// holds one directory per layer (presentation, domain, data) and, below each
// layer, one directory per submodule whose files are copied into every
// generated feature. An optional template-set.yaml at the root names the set
// and declares which featurekit versions it supports.
package templates
