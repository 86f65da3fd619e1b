package email

// PreviewData holds sample data for every template, keyed by template
// name. It is used to render templates outside of a real send.
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"Username": "moviebuff",
	},
}
