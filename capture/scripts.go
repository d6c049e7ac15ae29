package capture

// Scripts evaluated in the page. Each is a pure function of the DOM at call
// time, takes its inputs as arguments, and returns a JSON string.

// pageInfoJS reports the document title, height and base URL.
const pageInfoJS = `() => {
  const body = document.body;
  const root = document.documentElement;
  return JSON.stringify({
    title: document.title || "",
    scrollHeight: body ? body.scrollHeight : (root ? root.scrollHeight : 0),
    baseUrl: document.baseURI || location.href,
    url: location.href
  });
}`

// domTreeJS serializes the element tree below <body>, keeping only children
// taller than minHeight. Coordinates are absolute document coordinates.
const domTreeJS = `(minHeight) => {
  if (!document.body) return JSON.stringify(null);
  const sx = window.scrollX || window.pageXOffset || 0;
  const sy = window.scrollY || window.pageYOffset || 0;
  const walk = (el) => {
    const r = el.getBoundingClientRect();
    const cls = typeof el.className === "string" ? el.className : (el.getAttribute("class") || "");
    const node = {
      tag: el.tagName.toLowerCase(),
      id: el.id || "",
      className: cls,
      rect: { top: r.top + sy, left: r.left + sx, width: r.width, height: r.height },
      children: []
    };
    for (const child of el.children) {
      if (child.getBoundingClientRect().height > minHeight) {
        node.children.push(walk(child));
      }
    }
    return node;
  };
  return JSON.stringify(walk(document.body));
}`

// outerHTMLJS returns the outer HTML of the first element matching selector,
// or null.
const outerHTMLJS = `(selector) => {
  let el = null;
  try { el = document.querySelector(selector); } catch (e) { el = null; }
  return JSON.stringify(el ? el.outerHTML : null);
}`

// imagesJS reports every <img> and every element with a url() background.
const imagesJS = `() => {
  const sy = window.scrollY || window.pageYOffset || 0;
  const lazy = ["data-src", "data-lazy-src", "data-original", "data-lazy", "data-url"];
  const firstCandidate = (srcset) => (srcset || "").split(",")[0].trim().split(/\s+/)[0] || "";
  const usable = (v) => v && !v.startsWith("data:");
  const out = [];
  for (const img of document.querySelectorAll("img")) {
    const r = img.getBoundingClientRect();
    let src = img.getAttribute("src") || "";
    if (!usable(src)) {
      for (const attr of lazy) {
        const v = img.getAttribute(attr);
        if (usable(v)) { src = v; break; }
      }
    }
    if (!usable(src)) src = firstCandidate(img.getAttribute("srcset") || img.getAttribute("data-srcset")) || src;
    if (!usable(src) && usable(img.currentSrc)) src = img.currentSrc;
    out.push({
      kind: "img",
      url: src,
      alt: img.getAttribute("alt") || "",
      width: img.naturalWidth || r.width,
      height: img.naturalHeight || r.height,
      top: r.top + sy
    });
  }
  for (const el of document.querySelectorAll("*")) {
    const bg = getComputedStyle(el).backgroundImage;
    if (!bg || bg.indexOf("url(") === -1) continue;
    const r = el.getBoundingClientRect();
    out.push({ kind: "background", url: bg, alt: "", width: r.width, height: r.height, top: r.top + sy });
  }
  return JSON.stringify(out);
}`

// fontsJS reports <link> hrefs, readable @font-face rules, and the top of the
// first element rendered with each font family.
const fontsJS = `() => {
  const sy = window.scrollY || window.pageYOffset || 0;
  const links = [];
  for (const link of document.querySelectorAll("link[href]")) {
    links.push({ href: link.getAttribute("href") || "", rel: link.getAttribute("rel") || "" });
  }
  const faces = [];
  for (const sheet of Array.from(document.styleSheets)) {
    let rules;
    try { rules = sheet.cssRules; } catch (e) { continue; }
    if (!rules) continue;
    for (const rule of Array.from(rules)) {
      if (rule.constructor.name !== "CSSFontFaceRule" && rule.type !== 5) continue;
      faces.push({
        family: rule.style.getPropertyValue("font-family"),
        src: rule.style.getPropertyValue("src"),
        weight: rule.style.getPropertyValue("font-weight"),
        style: rule.style.getPropertyValue("font-style"),
        base: sheet.href || location.href
      });
    }
  }
  const usage = {};
  if (document.body) {
    for (const el of document.body.querySelectorAll("*")) {
      if (!el.childNodes.length) continue;
      const family = (getComputedStyle(el).fontFamily || "").split(",")[0].trim().replace(/^["']|["']$/g, "").toLowerCase();
      if (!family || family in usage) continue;
      usage[family] = el.getBoundingClientRect().top + sy;
    }
  }
  return JSON.stringify({ links, faces, usage });
}`

// videosJS reports every <iframe> and native <video>.
const videosJS = `() => {
  const sy = window.scrollY || window.pageYOffset || 0;
  const out = [];
  for (const frame of document.querySelectorAll("iframe")) {
    const r = frame.getBoundingClientRect();
    out.push({ kind: "iframe", url: frame.getAttribute("src") || frame.getAttribute("data-src") || "", poster: "", top: r.top + sy });
  }
  for (const video of document.querySelectorAll("video")) {
    const r = video.getBoundingClientRect();
    let src = video.getAttribute("src") || "";
    if (!src) {
      const source = video.querySelector("source[src]");
      if (source) src = source.getAttribute("src") || "";
    }
    out.push({ kind: "video", url: src, poster: video.getAttribute("poster") || "", top: r.top + sy });
  }
  return JSON.stringify(out);
}`
