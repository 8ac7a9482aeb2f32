package graphs

const visHTML = `<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="UTF-8">
    <title>%s</title>
    <style>
        * {
            margin: 0;
        }
        #network {
            width: 100vw;
            height: 100vh;
        }
    </style>
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <script type="text/javascript"
      src="https://unpkg.com/vis-network/standalone/umd/vis-network.min.js"></script>
  </head>
  <body>
    <div id="network"></div>
    <script type="text/javascript">
const data = %s;

const options = {
  physics: { enabled: false },
  interaction: { hover: true },
  edges: {
    font: { size: 9, color: "#999", strokeWidth: 0 },
    color: { color: "#ccc" },
  },
  nodes: {
    font: { size: 10, color: "#333" },
  },
};

new vis.Network(document.getElementById("network"), data, options);
    </script>
  </body>
</html>
`
