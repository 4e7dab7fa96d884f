package static

// The preview page is assembled as Part1, summary, chart, Part2, logs, Part3.
var (
	Part1 = `
    <!DOCTYPE html>
    <html>
    <head>
        <meta charset="utf-8">
        <title>Cell tiling preview</title>
		<style>
			body {
				background-color: #1F1F1F;
				color: #d3d3d3;
				font-family: Consolas, monospace;
				overflow: hidden;
			}

			#container {
				display: flex;
				width: 100%;
				height: 100vh;
				box-sizing: border-box;
			}

			#left-container {
				width: 60%;
				padding: 10px;
				box-sizing: border-box;
				overflow-y: auto;
			}

			#right-container {
				width: 40%;
				padding: 10px;
				box-sizing: border-box;
				border-left: 5px solid #757575;
				overflow-y: auto;
				overflow-x: auto;
				background-color: #1e1e1e;
			}

			#logs {
				white-space: pre-wrap;
				word-wrap: break-word;
				color: #d3d3d3;
				font-family: Consolas, monospace;
			}

			#summary {
				color: #d3d3d3;
				margin: 0 0 10px 0;
			}

			h1 {
				color: #d3d3d3;
			}

			::-webkit-scrollbar {
				width: 8px;
			}

			::-webkit-scrollbar-thumb {
				background-color: #444;
				border-radius: 10px;
			}

			::-webkit-scrollbar-track {
				background-color: #2b2b2b;
			}
        </style>
    </head>
    <body>
        <div id="container">
            <div id="left-container">
    `

	Part2 = `
            </div>
            <div id="right-container">
                <h1>Logs</h1>
                <div id="logs">`

	Part3 = `
                </div>
            </div>
        </div>
    </body>
    </html>
    `
)
