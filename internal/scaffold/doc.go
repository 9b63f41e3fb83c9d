// Package scaffold generates the files of a new project that do not come
// from django-admin: requirements, the helpers module, the accounts app
// sources, .gitignore, and the full Docker infrastructure tree.
//
// All file content comes from templates embedded in the binary, rendered
// with text/template plus the sprig function map. Templates use [[ ]]
// delimiters so that Prometheus and Grafana files can carry their own
// {{ $labels.* }} syntax through rendering untouched.
package scaffold
