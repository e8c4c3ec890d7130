package notify

import "fmt"

// Email bodies are small inline HTML fragments; the site supplies styling on
// the pages the links land on.

func NewApplicationEmail(to, applicantName, applicantEmail, company, approveURL, rejectURL string) EmailMessage {
	return EmailMessage{
		To:      to,
		Subject: fmt.Sprintf("New membership application: %s", applicantName),
		HTML: fmt.Sprintf(`<h2>New application received</h2>
<p><strong>%s</strong> (%s)%s has applied to join The Kartel.</p>
<p>
  <a href="%s">Approve</a> &nbsp;|&nbsp; <a href="%s">Reject</a>
</p>`, applicantName, applicantEmail, companyClause(company), approveURL, rejectURL),
	}
}

func ApplicationApprovedEmail(to, name string) EmailMessage {
	return EmailMessage{
		To:      to,
		Subject: "Welcome to The Kartel",
		HTML: fmt.Sprintf(`<h2>You're in, %s</h2>
<p>Your membership application has been approved. Use the magic link on the
login page to sign in with this email address.</p>`, name),
	}
}

func ApplicationRejectedEmail(to, name string) EmailMessage {
	return EmailMessage{
		To:      to,
		Subject: "Your Kartel application",
		HTML: fmt.Sprintf(`<p>Hi %s,</p>
<p>Thank you for your interest in The Kartel. We are unable to offer you
membership at this time.</p>`, name),
	}
}

func AdminSetupEmail(to, name, setupURL string) EmailMessage {
	return EmailMessage{
		To:      to,
		Subject: "Set up your Kartel admin access",
		HTML: fmt.Sprintf(`<p>Hi %s,</p>
<p>You have been granted admin access. Choose a password to finish setup:</p>
<p><a href="%s">Set your admin password</a></p>
<p>This link can be used once and expires.</p>`, name, setupURL),
	}
}

func LoginLinkEmail(to, loginURL string) EmailMessage {
	return EmailMessage{
		To:      to,
		Subject: "Your Kartel login link",
		HTML: fmt.Sprintf(`<p>Click to sign in to The Kartel:</p>
<p><a href="%s">Sign in</a></p>
<p>If you did not request this, ignore this email.</p>`, loginURL),
	}
}

func companyClause(company string) string {
	if company == "" {
		return ""
	}
	return fmt.Sprintf(" of %s", company)
}
