package server

// indexHTML is the upload form served at /. Kept inline: the whole frontend
// is one form and a result list.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>sasport — XPT to SAS7BDAT</title>
<style>
  body { font-family: sans-serif; max-width: 40rem; margin: 2rem auto; }
  fieldset { margin-bottom: 1rem; }
  .ok { color: #2a7a2a; }
  .err { color: #a33; }
</style>
</head>
<body>
<h1>sasport</h1>
<p>Convert SAS XPORT transport files (<code>.xpt</code>) to SAS7BDAT datasets.</p>
<form id="form">
  <fieldset>
    <legend>Upload files</legend>
    <input type="file" name="files" multiple accept=".xpt,.XPT">
  </fieldset>
  <fieldset>
    <legend>… or convert a server directory</legend>
    <input type="text" name="dir" placeholder="/path/to/xpt_files" size="40">
  </fieldset>
  <button type="submit">Convert</button>
</form>
<div id="out"></div>
<script>
document.getElementById('form').addEventListener('submit', async (e) => {
  e.preventDefault();
  const out = document.getElementById('out');
  out.textContent = 'Converting…';
  const resp = await fetch('/api/convert', { method: 'POST', body: new FormData(e.target) });
  const body = await resp.json();
  if (!resp.ok) { out.innerHTML = '<p class="err">' + body.error + '</p>'; return; }
  let html = '<h2>Summary</h2><p>' + body.succeeded.length + ' converted, ' +
    body.failed.length + ' failed (of ' + body.total + ')</p><ul>';
  for (const s of body.succeeded) {
    html += '<li class="ok"><a href="' + s.url + '">' + s.output + '</a></li>';
  }
  for (const f of body.failed) {
    html += '<li class="err">' + f.item + ': ' + f.error + '</li>';
  }
  html += '</ul>';
  if (body.archive_url) {
    html += '<p><a href="' + body.archive_url + '">Download all (zip)</a></p>';
  }
  out.innerHTML = html;
});
</script>
</body>
</html>
`
