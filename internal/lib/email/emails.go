package email

// SendWelcomeEmail greets a newly registered user.
func (c *Client) SendWelcomeEmail(to, username string) error {
	return c.SendEmail(to, "Welcome to Films API!", TemplateWelcome, map[string]string{
		"Username": username,
	})
}
