package templates

import (
	"fmt"
	"html"
	"strings"
)

const emailStyles = `
    body { font-family: 'Plus Jakarta Sans', 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 0; background-color: #f6f7f9; }
    .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; }
    .header { background: #3563e9; padding: 40px 30px; text-align: center; }
    .header h1 { color: #fff; margin: 0; font-size: 24px; font-weight: 700; }
    .content { padding: 40px 30px; color: #1a202c; line-height: 1.6; font-size: 15px; }
    .content h2 { margin-top: 0; }
    .details { width: 100%; border-collapse: collapse; margin: 20px 0; }
    .details td { padding: 8px 0; border-bottom: 1px solid #e2e8f0; }
    .details td.label { color: #90a3bf; width: 40%; }
    .cta-button { display: inline-block; background: #3563e9; color: #fff; padding: 14px 28px; border-radius: 4px; text-decoration: none; font-weight: 700; margin-top: 20px; }
    .footer { padding: 30px; text-align: center; color: #90a3bf; font-size: 12px; border-top: 1px solid #e2e8f0; }
    .footer a { color: #3563e9; text-decoration: none; }`

func layout(title, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1, minimum-scale=1, maximum-scale=1">
  <title>%s</title>
  <style type="text/css">%s
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>%s</h1>
    </div>
    <div class="content">
      %s
    </div>
    <div class="footer">
      <p>&copy; Morent Car Rental</p>
    </div>
  </div>
</body>
</html>`, title, emailStyles, title, body)
}

// RenderGenericEmail generates branded HTML for a generic email.
// The subject is displayed in the header banner, and bodyContent is plain text
// that gets HTML-escaped and has newlines converted to <br> tags.
func RenderGenericEmail(subject, bodyContent string) string {
	escaped := html.EscapeString(bodyContent)
	htmlBody := strings.ReplaceAll(escaped, "\n", "<br>")
	return layout(html.EscapeString(subject), htmlBody)
}
