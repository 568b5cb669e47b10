package cmd

// Report templates are written for Slack-flavored markdown so their output
// can be pasted into (or posted to) a channel as-is.

const issuesTemplate = `{{ range .Projects -}}
*{{ .Name }}*
{{ range .States -}}
_{{ .Name }}_{{ if .Owner }} (@{{ .Owner }}){{ end }}
{{ range .Issues -}}
- {{ .URL }} ({{ .Title }}){{ if .SlackUsername }} @{{ .SlackUsername }}{{ end }}{{ if .Days }} [{{ .Days }} days]{{ end }}
{{ end }}
{{- end }}
{{ end -}}`

const unaccountedTemplate = `{{ range .Projects -}}
*{{ .Name }}*
{{ range .Issues -}}
- {{ .URL }}{{ if .SlackUsername }} @{{ .SlackUsername }}{{ end }}
{{ end }}
{{- end -}}`

const filesTemplate = `{{ range .Projects -}}
*{{ .Name }}*
{{ range .Pulls -}}
- {{ .URL }} ({{ .Title }}) by {{ .Author }}
{{ end }}
{{- end -}}`
