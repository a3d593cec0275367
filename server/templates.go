package server

// placeholderCode pre-fills the input textarea with a worked example so the
// tool is demonstrable without hunting for a script.
const placeholderCode = `-- SQL Example: Revenue Aggregation and Customer Segmentation
WITH MonthlyRevenue AS (
    SELECT
        DATE_TRUNC('month', o.order_date) AS sales_month,
        c.customer_id,
        SUM(o.amount) AS monthly_order_value,
        COUNT(DISTINCT o.order_id) AS distinct_orders
    FROM
        ecommerce_raw.orders o
    JOIN
        ecommerce_raw.customers c ON o.customer_id = c.id
    WHERE
        o.order_status = 'COMPLETED'
    GROUP BY
        1, 2
),
CustomerSegments AS (
    SELECT
        mr.sales_month,
        mr.customer_id,
        mr.monthly_order_value,
        CASE
            WHEN mr.monthly_order_value >= 1000 THEN 'High Value'
            WHEN mr.monthly_order_value BETWEEN 500 AND 999 THEN 'Medium Value'
            ELSE 'Low Value'
        END AS customer_segment,
        LAG(mr.monthly_order_value, 1) OVER (PARTITION BY mr.customer_id ORDER BY mr.sales_month) AS previous_month_value
    FROM
        MonthlyRevenue mr
)
INSERT INTO analytics_mart.customer_monthly_summary (
    reporting_month,
    customer_key,
    total_monthly_spend,
    segment,
    last_month_spend
)
SELECT
    cs.sales_month AS reporting_month,
    cs.customer_id AS customer_key,
    cs.monthly_order_value AS total_monthly_spend,
    cs.customer_segment AS segment,
    COALESCE(cs.previous_month_value, 0) AS last_month_spend
FROM
    CustomerSegments cs
WHERE
    cs.sales_month >= '2024-01-01';
`

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>Data Lineage Mapper</title>
    <style>
        :root {
            --bg: {{if .DarkMode}}#0d1117{{else}}#ffffff{{end}};
            --panel: {{if .DarkMode}}#161b22{{else}}#f6f8fa{{end}};
            --text: {{if .DarkMode}}#e6edf3{{else}}#1f2328{{end}};
            --border: {{if .DarkMode}}#30363d{{else}}#d0d7de{{end}};
            --accent: #58a6ff;
        }
        body {
            margin: 0 auto;
            max-width: 1100px;
            padding: 24px;
            font-family: Inter, Arial, sans-serif;
            background-color: var(--bg);
            color: var(--text);
        }
        h1 { color: var(--accent); }
        textarea {
            width: 100%;
            height: 340px;
            font-family: "SFMono-Regular", Consolas, monospace;
            font-size: 13px;
            background-color: var(--panel);
            color: var(--text);
            border: 1px solid var(--border);
            border-radius: 6px;
            padding: 10px;
            box-sizing: border-box;
        }
        select, input[type=url] {
            background-color: var(--panel);
            color: var(--text);
            border: 1px solid var(--border);
            border-radius: 6px;
            padding: 6px;
        }
        input[type=url] { width: 420px; }
        button {
            background-color: var(--accent);
            color: #0d1117;
            font-weight: 600;
            border: none;
            border-radius: 6px;
            padding: 10px 18px;
            margin: 4px 2px;
            cursor: pointer;
        }
        button.secondary { background-color: var(--panel); color: var(--text); border: 1px solid var(--border); }
        .warning {
            background-color: #3d2c00;
            color: #e3b341;
            border: 1px solid #9e6a03;
            border-radius: 6px;
            padding: 10px 14px;
            margin: 12px 0;
        }
        .report-box {
            background-color: var(--panel);
            border: 1px solid var(--border);
            border-radius: 6px;
            padding: 16px;
            white-space: pre-wrap;
            font-size: 14px;
            overflow-x: auto;
        }
        iframe { width: 100%; height: 750px; border: 1px solid var(--border); border-radius: 6px; }
        .downloads a {
            color: var(--accent);
            margin-right: 18px;
        }
        hr { border: none; border-top: 1px solid var(--border); margin: 24px 0; }
        footer { font-size: 12px; color: #768390; margin-top: 32px; }
        form.inline { display: inline; }
    </style>
</head>
<body>
    <h1>🔗 Data Lineage Mapper</h1>
    <p>
        Paste your ETL SQL scripts or pipeline code below and let the AI map
        column-level data lineage: data flow, transformations and dependencies,
        as a narrative report and an interactive graph.
    </p>
    <form class="inline" method="post" action="/theme">
        <button class="secondary" type="submit">{{if .DarkMode}}☀️ Light Mode{{else}}🌙 Dark Mode{{end}}</button>
    </form>
    <hr>

    {{if .Warning}}<div class="warning">{{.Warning}}</div>{{end}}

    <h2>📝 Paste Your ETL Code/SQL Here</h2>
    <form method="post" action="/import">
        <input type="url" name="url" placeholder="https://example.com/pipeline.sql">
        <button class="secondary" type="submit">Import from URL</button>
    </form>
    <form method="post" action="/lineage">
        <p>
            <label for="language">Code language:</label>
            <select id="language" name="language">
                <option value="sql"{{if ne .Language "python"}} selected{{end}}>sql</option>
                <option value="python"{{if eq .Language "python"}} selected{{end}}>python</option>
            </select>
        </p>
        <textarea name="code" spellcheck="false">{{.Input}}</textarea>
        <p>
            <button type="submit">✨ Map Data Lineage</button>
        </p>
    </form>
    <form class="inline" method="post" action="/clear">
        <button class="secondary" type="submit">🔄 Clear All Inputs &amp; Results</button>
    </form>

    {{if .HasResult}}
    <hr>
    <h2>📊 Mapped Data Lineage</h2>
    <div class="report-box">{{.Report}}</div>

    <h2>🌐 Interactive Lineage Graph</h2>
    {{if .HasGraph}}
    <iframe src="/graph.html"></iframe>
    {{else}}
    <div class="warning">{{.GraphDiagnostic}}</div>
    {{end}}

    <h2>💾 Download Lineage Report</h2>
    <p class="downloads">
        <a href="/download/report.md">⬇️ Download Markdown Report</a>
        {{if .HasGraph}}<a href="/download/graph.json">⬇️ Download Structured JSON</a>{{end}}
    </p>
    {{end}}

    <footer>🔗 Intelligent Data Lineage Mapper | Powered by Google Gemini</footer>
</body>
</html>
`
