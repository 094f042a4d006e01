package content

// Email layouts. The three roles share a structure (header, lead, code box, expiry, notice)
// but are styled independently; the admin layout carries explicit security warnings.

const customerEmailTmpl = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #4F46E5; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
        .content { background-color: #f9fafb; padding: 30px; border-radius: 0 0 5px 5px; }
        .code { font-size: 32px; font-weight: bold; letter-spacing: 8px; text-align: center; background: #ffffff; border: 2px dashed #4F46E5; padding: 16px; margin: 24px 0; }
        .notice { font-size: 13px; color: #6b7280; }
    </style>
</head>
<body>
    <div class="header"><h1>{{.Brand}}</h1></div>
    <div class="content">
        <p>Hi {{.Name}},</p>
        <p>{{.Lead}}</p>
        <div class="code">{{.Code}}</div>
        <p>This code expires in <strong>{{.Expiry}}</strong>.</p>
        <p class="notice">For your security, never share this code with anyone. {{.Brand}} will never ask you for it.
        If you didn't request this code, you can safely ignore this email.</p>
        <p class="notice">Need help? Contact us at {{.SupportEmail}}.</p>
    </div>
</body>
</html>`

const vendorEmailTmpl = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Helvetica, Arial, sans-serif; line-height: 1.6; color: #1f2937; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #047857; color: white; padding: 20px; border-radius: 5px 5px 0 0; }
        .header small { display: block; opacity: 0.85; }
        .content { background-color: #f0fdf4; padding: 30px; border-radius: 0 0 5px 5px; }
        .code { font-size: 30px; font-weight: bold; letter-spacing: 6px; text-align: center; background: #ffffff; border: 2px solid #047857; padding: 14px; margin: 24px 0; }
        .notice { font-size: 13px; color: #4b5563; border-top: 1px solid #d1fae5; padding-top: 12px; }
    </style>
</head>
<body>
    <div class="header"><h1>{{.Brand}}</h1><small>Seller Center</small></div>
    <div class="content">
        <p>Hello {{.Name}},</p>
        <p>{{.Lead}}</p>
        <div class="code">{{.Code}}</div>
        <p>The code is valid for <strong>{{.Expiry}}</strong>.</p>
        <p class="notice">Keep your seller account safe: never share this code, including with anyone claiming to be from {{.Brand}}.
        If you didn't make this request, please secure your account and contact {{.SupportEmail}}.</p>
    </div>
</body>
</html>`

const adminEmailTmpl = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #111827; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #991b1b; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
        .content { background-color: #fef2f2; padding: 30px; border-radius: 0 0 5px 5px; }
        .alert { background: #fee2e2; border-left: 5px solid #dc2626; padding: 12px 16px; font-weight: bold; }
        .code { font-size: 32px; font-weight: bold; letter-spacing: 8px; text-align: center; background: #111827; color: #fef2f2; padding: 16px; margin: 24px 0; }
        ul.warnings { color: #7f1d1d; font-size: 14px; }
    </style>
</head>
<body>
    <div class="header"><h1>{{.Brand}} Administration</h1><p>Security Verification Required</p></div>
    <div class="content">
        <p>Administrator {{.Name}},</p>
        <p>{{.Lead}}</p>
        <div class="code">{{.Code}}</div>
        <p>This code expires in <strong>{{.Expiry}}</strong> and can be used only once.</p>
        <div class="alert">SECURITY WARNING: this code grants administrative access.</div>
        <ul class="warnings">
            <li>Never share this code with anyone, including other administrators or {{.Brand}} staff.</li>
            <li>{{.Brand}} will never call, text, or email you asking for this code.</li>
            <li>If you did not request this code, your account may be compromised. Contact {{.SupportEmail}} immediately.</li>
        </ul>
    </div>
</body>
</html>`
