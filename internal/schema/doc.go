// Package schema declares the HCL block structures decoded with gohcl. It is
// HCL-specific; the rest of the application works on the `config` model.
package schema
